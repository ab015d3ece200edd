// Package control contains the list coordinator, which owns the view state
// of the trip's point list and routes user intents and model notifications,
// and the loop it runs on.
package control

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/sortfilter"
)

// Placeholder messages.
const (
	MessageLoading    = "Loading..."
	MessageLoadFailed = "Failed to load latest route information"
)

// NoPointsMessage returns the placeholder text for an empty list under the
// given filter.
func NoPointsMessage(f model.FilterType) string {
	switch f {
	case model.FilterPast:
		return "There are no past events now"
	case model.FilterPresent:
		return "There are no present events now"
	case model.FilterFuture:
		return "There are no future events now"
	default:
		return "Click New Event to create your first point"
	}
}

// PointsSource is the data layer the coordinator consumes.
type PointsSource interface {
	Points() []model.Point
	Reference() model.Reference
	LoadError() error
	AddObserver(model.PointsObserver)

	UpdatePoint(ctx context.Context, t model.UpdateType, p model.Point) error
	AddPoint(ctx context.Context, t model.UpdateType, p model.Point) error
	DeletePoint(ctx context.Context, t model.UpdateType, p model.Point) error
}

// FilterSource is the filter state the coordinator consumes and resets.
type FilterSource interface {
	Filter() model.FilterType
	SetFilter(model.UpdateType, model.FilterType)
	AddObserver(model.FilterObserver)
}

// ActionBlocker is the busy-state lock around dispatched actions.
type ActionBlocker interface {
	Block()
	Unblock()
}

// PlaceholderView shows a message in place of the list.
type PlaceholderView interface {
	ShowMessage(msg string)
	Remove()
}

// SortView renders the sort controls.
type SortView interface {
	ShowSort(current model.SortType)
}

// Mounts are the rendering collaborators the coordinator draws into.
type Mounts struct {
	Items       presenter.ViewFactory
	Placeholder PlaceholderView
	Sort        SortView
	Info        presenter.InfoView
}

// Options configure a Coordinator.
type Options struct {
	Points    PointsSource
	Filters   FilterSource
	Blocker   ActionBlocker
	Scheduler Scheduler
	Mounts    Mounts

	// Now is consulted on every filter evaluation; defaults to time.Now.
	Now func() time.Time
	// OnNewPointDestroy is called when a creation flow ends.
	OnNewPointDestroy func()
}

// newPointToken is the edit token held by the creation flow.
const newPointToken model.PointID = "\x00new"

// Coordinator owns the derived view of the point list: the current sort, the
// set of item presenters, the creation flow and the placeholder. All of its
// methods must be called on the Scheduler's loop.
type Coordinator struct {
	points    PointsSource
	filters   FilterSource
	blocker   ActionBlocker
	scheduler Scheduler
	mounts    Mounts
	now       func() time.Time

	presenters map[model.PointID]*presenter.PointPresenter
	order      []model.PointID
	newPoint   *presenter.CreationPresenter
	info       *presenter.TripInfoPresenter

	sortType     model.SortType
	activeEdit   model.PointID
	isCreating   bool
	isLoading    bool
	isClearing   bool
	onNewDestroy func()
}

// NewCoordinator returns a coordinator that has not subscribed to anything
// yet; call Initialize.
func NewCoordinator(opts Options) *Coordinator {
	c := &Coordinator{
		points:       opts.Points,
		filters:      opts.Filters,
		blocker:      opts.Blocker,
		scheduler:    opts.Scheduler,
		mounts:       opts.Mounts,
		now:          opts.Now,
		presenters:   make(map[model.PointID]*presenter.PointPresenter),
		sortType:     model.SortDay,
		onNewDestroy: opts.OnNewPointDestroy,
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.info = presenter.NewTripInfoPresenter(opts.Mounts.Info)
	c.newPoint = presenter.NewCreationPresenter(opts.Mounts.Items, c.DispatchAction, c.handleNewPointDestroy)
	return c
}

// Initialize subscribes to the models and shows the loading placeholder
// until the INIT notification arrives.
//
// Points notifications arrive on whichever goroutine changed the model and
// are posted onto the loop; filter notifications are raised on the loop
// already and are handled right away.
func (c *Coordinator) Initialize() {
	c.points.AddObserver(func(t model.UpdateType, p model.Point) {
		c.scheduler.Post(func() { c.handleModelEvent(t, p) })
	})
	c.filters.AddObserver(func(t model.UpdateType, _ model.FilterType) {
		c.handleModelEvent(t, model.Point{})
	})
	c.isLoading = true
	c.mounts.Sort.ShowSort(c.sortType)
	c.showMessage(nil)
}

// CurrentView returns the collection ordered by the current sort type.
// It is recomputed on every call.
func (c *Coordinator) CurrentView() ([]model.Point, error) {
	return sortfilter.Sort(c.sortType, c.points.Points())
}

func (c *Coordinator) filteredView() ([]model.Point, error) {
	sorted, err := c.CurrentView()
	if err != nil {
		return nil, err
	}
	return sortfilter.Filter(c.filters.Filter(), sorted, c.now())
}

// SortType returns the current sort type.
func (c *Coordinator) SortType() model.SortType { return c.sortType }

// IsCreating returns whether the creation flow is open.
func (c *Coordinator) IsCreating() bool { return c.isCreating }

// IsLoading returns whether the initial load is still pending.
func (c *Coordinator) IsLoading() bool { return c.isLoading }

// ActiveEdit returns the point holding the edit token, if any.
func (c *Coordinator) ActiveEdit() (model.PointID, bool) {
	if c.activeEdit == "" || c.activeEdit == newPointToken {
		return "", false
	}
	return c.activeEdit, true
}

// RenderedIDs returns the IDs of the rendered points in render order.
func (c *Coordinator) RenderedIDs() []model.PointID {
	result := make([]model.PointID, len(c.order))
	copy(result, c.order)
	return result
}

// PresenterStatus returns the status of the point's presenter, if rendered.
func (c *Coordinator) PresenterStatus(id model.PointID) (presenter.Status, bool) {
	p, ok := c.presenters[id]
	if !ok {
		return presenter.StatusIdle, false
	}
	return p.Status(), true
}

// NewPointStatus returns the status of the creation flow.
func (c *Coordinator) NewPointStatus() presenter.Status { return c.newPoint.Status() }

// StartCreate opens the creation flow. Sort and filter are reset first so the
// new point is guaranteed to be visible once created.
func (c *Coordinator) StartCreate() {
	if c.isLoading {
		log.Debug().Msg("not creating a point while loading")
		return
	}
	if c.newPoint.Active() {
		return
	}

	c.sortType = model.SortDay
	c.filters.SetFilter(model.UpdateMajor, model.FilterEverything)

	c.resetEditors("")
	c.activeEdit = newPointToken
	c.newPoint.Init(c.points.Reference(), c.now())
	c.isCreating = true
	c.mounts.Placeholder.Remove()
}

// HandleSortTypeChange re-renders the list under a different sort type.
// Re-selecting the current one does nothing.
func (c *Coordinator) HandleSortTypeChange(t model.SortType) {
	if t == c.sortType {
		return
	}
	if !sortfilter.ValidSort(t) {
		log.Error().Err(&sortfilter.ConfigurationError{Kind: "sort", Name: string(t)}).Msg("ignoring sort change")
		return
	}

	log.Debug().Str("sort-type", string(t)).Msg("changing sort")
	c.sortType = t
	c.clearList(false)
	c.mounts.Sort.ShowSort(c.sortType)

	view, err := c.filteredView()
	if err != nil {
		log.Error().Err(err).Msg("could not derive view")
		return
	}
	c.renderPoints(view)
	c.showMessage(view)
}

// DispatchAction forwards a user intent to the data layer.
//
// The originating presenter is marked saving or deleting and the blocker is
// held until the data layer settles. The point is never changed locally: on
// success the data layer's notification re-renders, on failure the presenter
// flashes and reverts.
func (c *Coordinator) DispatchAction(action model.UserAction, t model.UpdateType, p model.Point) {
	var task func(context.Context) error

	switch action {
	case model.ActionUpdatePoint, model.ActionDeletePoint:
		item, ok := c.presenters[p.ID]
		if !ok {
			log.Error().Str("point-id", string(p.ID)).Stringer("action", action).Msg("no presenter for point")
			return
		}
		c.blocker.Block()
		if action == model.ActionUpdatePoint {
			item.SetSaving()
			task = func(ctx context.Context) error { return c.points.UpdatePoint(ctx, t, p) }
		} else {
			item.SetDeleting()
			task = func(ctx context.Context) error { return c.points.DeletePoint(ctx, t, p) }
		}

	case model.ActionAddPoint:
		c.blocker.Block()
		c.newPoint.SetSaving()
		task = func(ctx context.Context) error { return c.points.AddPoint(ctx, t, p) }

	default:
		log.Error().Stringer("action", action).Msg("unknown user action")
		return
	}

	log.Debug().Stringer("action", action).Stringer("update-type", t).Str("point-id", string(p.ID)).Msg("dispatching")
	c.scheduler.Go(task, func(err error) {
		if err != nil {
			log.Warn().Err(err).Stringer("action", action).Str("point-id", string(p.ID)).Msg("action rejected")
			c.abort(action, p.ID)
		}
		c.blocker.Unblock()
	})
}

func (c *Coordinator) abort(action model.UserAction, id model.PointID) {
	if action == model.ActionAddPoint {
		c.newPoint.SetAborting()
		return
	}
	if item, ok := c.presenters[id]; ok {
		item.SetAborting()
		return
	}
	log.Warn().Str("point-id", string(id)).Msg("presenter of rejected action is gone")
}

func (c *Coordinator) handleModelEvent(t model.UpdateType, p model.Point) {
	log.Debug().Stringer("update-type", t).Str("point-id", string(p.ID)).Msg("model changed")

	switch t {
	case model.UpdatePatch:
		item, ok := c.presenters[p.ID]
		if !ok {
			log.Debug().Str("point-id", string(p.ID)).Msg("patched point not rendered")
			return
		}
		item.Init(p)
		c.refreshInfo()

	case model.UpdateMinor:
		view, err := c.filteredView()
		if err != nil {
			log.Error().Err(err).Msg("could not derive view")
			return
		}
		c.info.Init(view, c.points.Reference())
		c.clearList(false)
		c.renderPoints(view)
		c.showMessage(view)

	case model.UpdateMajor:
		c.clearList(true)
		view, err := c.filteredView()
		if err != nil {
			log.Error().Err(err).Msg("could not derive view")
			return
		}
		c.info.Init(view, c.points.Reference())
		c.renderPoints(view)
		c.showMessage(view)

	case model.UpdateInit:
		c.isLoading = false
		view, err := c.filteredView()
		if err != nil {
			log.Error().Err(err).Msg("could not derive view")
			return
		}
		c.info.Init(view, c.points.Reference())
		c.clearList(false)
		c.renderPoints(view)
		c.showMessage(view)

	default:
		log.Error().Stringer("update-type", t).Msg("unknown update type")
	}
}

func (c *Coordinator) refreshInfo() {
	view, err := c.filteredView()
	if err != nil {
		log.Error().Err(err).Msg("could not derive view")
		return
	}
	c.info.Init(view, c.points.Reference())
}

func (c *Coordinator) renderPoints(points []model.Point) {
	ref := c.points.Reference()
	for _, p := range points {
		if old, ok := c.presenters[p.ID]; ok {
			log.Warn().Str("point-id", string(p.ID)).Msg("point rendered twice, replacing")
			old.Destroy()
			c.removeFromOrder(p.ID)
		}
		item := presenter.NewPointPresenter(c.mounts.Items, ref, c.DispatchAction, arbiter{c})
		item.Init(p)
		c.presenters[p.ID] = item
		c.order = append(c.order, p.ID)
		c.mounts.Placeholder.Remove()
	}
}

func (c *Coordinator) clearList(resetSort bool) {
	c.isClearing = true
	c.newPoint.Destroy()
	c.isClearing = false
	c.isCreating = false

	for _, id := range c.order {
		c.presenters[id].Destroy()
	}
	c.presenters = make(map[model.PointID]*presenter.PointPresenter)
	c.order = nil
	c.activeEdit = ""

	c.mounts.Placeholder.Remove()

	if resetSort {
		c.sortType = model.SortDay
		c.mounts.Sort.ShowSort(c.sortType)
	}
}

func (c *Coordinator) removeFromOrder(id model.PointID) {
	for i := range c.order {
		if c.order[i] == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// showMessage shows the placeholder matching the current state, or removes
// it when the list has content.
func (c *Coordinator) showMessage(view []model.Point) {
	switch {
	case c.isLoading:
		c.mounts.Placeholder.ShowMessage(MessageLoading)
	case len(view) == 0 && !c.isCreating:
		if c.points.LoadError() != nil {
			c.mounts.Placeholder.ShowMessage(MessageLoadFailed)
		} else {
			c.mounts.Placeholder.ShowMessage(NoPointsMessage(c.filters.Filter()))
		}
	default:
		c.mounts.Placeholder.Remove()
	}
}

func (c *Coordinator) handleNewPointDestroy() {
	if c.activeEdit == newPointToken {
		c.activeEdit = ""
	}
	c.isCreating = false
	if c.onNewDestroy != nil {
		c.onNewDestroy()
	}
	if c.isClearing {
		return
	}
	view, err := c.filteredView()
	if err != nil {
		log.Error().Err(err).Msg("could not derive view")
		return
	}
	c.showMessage(view)
}

// resetEditors closes every editor except the one of the given point.
func (c *Coordinator) resetEditors(except model.PointID) {
	for _, id := range c.order {
		if id != except {
			c.presenters[id].ResetView()
		}
	}
}

// arbiter implements presenter.EditArbiter over the coordinator's single
// active-edit token.
type arbiter struct {
	c *Coordinator
}

func (a arbiter) Acquire(id model.PointID) {
	if a.c.activeEdit == newPointToken {
		a.c.newPoint.Destroy()
	}
	a.c.resetEditors(id)
	a.c.activeEdit = id
}

func (a arbiter) Release(id model.PointID) {
	if a.c.activeEdit == id {
		a.c.activeEdit = ""
	}
}
