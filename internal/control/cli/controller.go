package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/blocker"
	"github.com/ja-he/tripplan/internal/config"
	"github.com/ja-he/tripplan/internal/control"
	"github.com/ja-he/tripplan/internal/input"
	"github.com/ja-he/tripplan/internal/input/processors"
	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/potatolog"
	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/storage"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/tui"
	"github.com/ja-he/tripplan/internal/ui"
	"github.com/ja-he/tripplan/internal/ui/panes"
)

// Controller wires the point list's models, coordinator and panes to the
// terminal and runs them on a single loop.
type Controller struct {
	screen *tui.ScreenHandler
	loop   *control.Loop

	rootPane *panes.RootPane
	list     *panes.ListPane
	controls *panes.ControlsPane
	overlay  *panes.BusyOverlay

	points          *model.PointsModel
	filters         *model.FilterModel
	coordinator     *control.Coordinator
	filterPresenter *presenter.FilterPresenter

	inputProcessor *processors.ModalInputProcessor
	editorTree     *input.Tree
	showHelp       bool
}

// NewController constructs the UI over the given backend and screen.
func NewController(
	configData config.Config,
	stylesheet *styling.Stylesheet,
	backend storage.Backend,
	screen *tui.ScreenHandler,
) (*Controller, error) {
	c := &Controller{screen: screen}
	c.loop = control.NewLoop(c.afterEach)

	layout := panes.NewLayout(screen.Dimensions)
	constrained := func(dims func() (x, y, w, h int)) ui.ConstrainedRenderer {
		return ui.NewConstrainedRenderer(screen, dims)
	}

	c.overlay = panes.NewBusyOverlay(constrained(layout.List), layout.List, stylesheet, c.loop.Post)
	c.list = panes.NewListPane(constrained(layout.List), layout.List, stylesheet, c.loop.Post, c.overlay.Shown)
	placeholder := panes.NewPlaceholderPane(constrained(layout.List), layout.List, stylesheet)
	info := panes.NewInfoPane(constrained(layout.Info), layout.Info, stylesheet)
	c.controls = panes.NewControlsPane(constrained(layout.Controls), layout.Controls, stylesheet)

	lower, upper, err := configData.Blocker.Limits()
	if err != nil {
		return nil, err
	}
	actionBlocker := blocker.New(c.overlay, lower, upper)

	c.points = model.NewPointsModel(backend)
	c.filters = model.NewFilterModel()
	c.coordinator = control.NewCoordinator(control.Options{
		Points:    c.points,
		Filters:   c.filters,
		Blocker:   actionBlocker,
		Scheduler: c.loop,
		Mounts: control.Mounts{
			Items:       c.list,
			Placeholder: placeholder,
			Sort:        c.controls,
			Info:        info,
		},
		Now: time.Now,
	})
	c.filterPresenter = presenter.NewFilterPresenter(c.controls, c.filters, c.points, time.Now)
	c.controls.SetFilterHandler(c.filterPresenter.HandleFilterChange)

	listTree, err := input.ConstructBoundTree(configData.KeyBindings.List, c.listBindings())
	if err != nil {
		return nil, fmt.Errorf("invalid list key bindings (%w)", err)
	}
	c.editorTree, err = input.ConstructBoundTree(configData.KeyBindings.Editor, c.editorBindings())
	if err != nil {
		return nil, fmt.Errorf("invalid editor key bindings (%w)", err)
	}
	c.inputProcessor = processors.NewModalInputProcessor(listTree)

	status := panes.NewStatusPane(
		constrained(layout.Status), layout.Status, stylesheet,
		&potatolog.GlobalMemoryLogReaderWriter,
		c.mode,
		c.inputProcessor.Pending,
		func() int { return len(c.points.Points()) },
	)
	help := panes.NewHelpPane(
		constrained(layout.Help), layout.Help, stylesheet,
		func() bool { return c.showHelp },
		c.inputProcessor.GetHelp,
	)

	c.rootPane = panes.NewRootPane(
		screen,
		screen.Dimensions,
		info,
		c.controls,
		c.list,
		placeholder,
		c.overlay,
		status,
		help,
	)

	return c, nil
}

func (c *Controller) listBindings() input.Bindings {
	onSelected := func(f func(*panes.ItemView)) func() {
		return c.unlessBlocked(func() {
			if v := c.list.Selected(); v != nil {
				f(v)
			}
		})
	}
	sortBy := func(t model.SortType) func() {
		return c.unlessBlocked(func() { c.coordinator.HandleSortTypeChange(t) })
	}
	return input.Bindings{
		"select-next":     c.list.SelectNext,
		"select-prev":     c.list.SelectPrev,
		"select-first":    c.list.SelectFirst,
		"select-last":     c.list.SelectLast,
		"edit":            onSelected((*panes.ItemView).Edit),
		"toggle-favorite": onSelected((*panes.ItemView).ToggleFavorite),
		"delete":          onSelected((*panes.ItemView).Delete),
		"new-point":       c.unlessBlocked(c.coordinator.StartCreate),
		"sort-day":        sortBy(model.SortDay),
		"sort-event":      sortBy(model.SortEvent),
		"sort-time":       sortBy(model.SortTime),
		"sort-price":      sortBy(model.SortPrice),
		"sort-offers":     sortBy(model.SortOffers),
		"next-filter":     c.unlessBlocked(c.controls.NextFilter),
		"toggle-help":     func() { c.showHelp = !c.showHelp },
		"quit":            c.loop.Stop,
	}
}

func (c *Controller) editorBindings() input.Bindings {
	onEditor := func(f func(*panes.ItemView)) func() {
		return func() {
			if v := c.list.ActiveEditor(); v != nil {
				f(v)
			}
		}
	}
	toggleOffer := func(n int) func() {
		return onEditor(func(v *panes.ItemView) { v.ToggleOffer(n) })
	}
	bindings := input.Bindings{
		"next-type":        onEditor(func(v *panes.ItemView) { v.CycleType(1) }),
		"prev-type":        onEditor(func(v *panes.ItemView) { v.CycleType(-1) }),
		"next-destination": onEditor(func(v *panes.ItemView) { v.CycleDestination(1) }),
		"prev-destination": onEditor(func(v *panes.ItemView) { v.CycleDestination(-1) }),
		"increase-price":   onEditor(func(v *panes.ItemView) { v.AdjustPrice(panes.PriceStep) }),
		"decrease-price":   onEditor(func(v *panes.ItemView) { v.AdjustPrice(-panes.PriceStep) }),
		"start-earlier":    onEditor(func(v *panes.ItemView) { v.ShiftStart(-panes.TimeStep) }),
		"start-later":      onEditor(func(v *panes.ItemView) { v.ShiftStart(panes.TimeStep) }),
		"end-earlier":      onEditor(func(v *panes.ItemView) { v.ShiftEnd(-panes.TimeStep) }),
		"end-later":        onEditor(func(v *panes.ItemView) { v.ShiftEnd(panes.TimeStep) }),
		"save":             c.unlessBlocked(onEditor((*panes.ItemView).Submit)),
		"delete":           c.unlessBlocked(onEditor((*panes.ItemView).Delete)),
		"cancel":           onEditor((*panes.ItemView).Cancel),
		"toggle-help":      func() { c.showHelp = !c.showHelp },
		"quit":             c.loop.Stop,
	}
	for n := 1; n <= 9; n++ {
		bindings[fmt.Sprintf("toggle-offer-%d", n)] = toggleOffer(n)
	}
	return bindings
}

// unlessBlocked drops the action while the list is locked.
func (c *Controller) unlessBlocked(f func()) func() {
	return func() {
		if c.overlay.Shown() {
			log.Debug().Msg("list is busy, dropping input")
			return
		}
		f()
	}
}

func (c *Controller) mode() string {
	switch {
	case c.coordinator.IsLoading():
		return "LOADING"
	case c.coordinator.IsCreating():
		return "NEW"
	case c.list.ActiveEditor() != nil:
		return "EDIT"
	default:
		return "LIST"
	}
}

const editorMode = "editor"

// syncInputMode puts the editor bindings on top while an editor is open.
func (c *Controller) syncInputMode() {
	editorOpen := c.list.ActiveEditor() != nil
	active := c.inputProcessor.Active(editorMode)
	switch {
	case editorOpen && !active:
		c.editorTree.Reset()
		c.inputProcessor.Push(editorMode, c.editorTree)
	case !editorOpen && active:
		c.inputProcessor.Pop(editorMode)
	}
}

func (c *Controller) afterEach() {
	c.syncInputMode()
	c.rootPane.Draw()
}

func (c *Controller) processKey(key input.Key) {
	if !c.inputProcessor.ProcessInput(key) {
		log.Debug().Str("key", key.String()).Msg("could not apply key input")
	}
}

// Run runs the UI until quit or until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	log.Info().Msg("tripplan TUI started")
	defer c.screen.Fini()

	// the loop is not running yet, so this is still the loop's thread
	c.coordinator.Initialize()
	c.filterPresenter.Init()
	c.points.AddObserver(func(model.UpdateType, model.Point) {
		c.loop.Post(c.filterPresenter.Init)
	})
	c.filters.AddObserver(func(model.UpdateType, model.FilterType) {
		c.filterPresenter.Init()
	})
	c.rootPane.Draw()

	c.loop.Go(
		func(ctx context.Context) error {
			c.points.Init(ctx)
			return nil
		},
		func(error) {},
	)

	// filters are relative to the current time, so they are refreshed every
	// minute
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.loop.Post(c.filterPresenter.Init)
			}
		}
	}()

	go c.pollEvents()

	c.loop.Run(ctx)
	c.loop.Wait()
	log.Info().Msg("tripplan TUI stopped")
}

func (c *Controller) pollEvents() {
	events := c.screen.GetEventPollable()
	for {
		ev := events.PollEvent()
		switch e := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			key := input.KeyFromTcellEvent(e)
			c.loop.Post(func() { c.processKey(key) })
		case *tcell.EventResize:
			c.loop.Post(c.screen.NeedsSync)
		}
	}
}
