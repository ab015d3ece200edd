package panes_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ja-he/tripplan/internal/input"
	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/potatolog"
	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/sortfilter"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui/panes"
)

type drawnText struct {
	x, y int
	text string
}

type recordingRenderer struct {
	texts []drawnText
	boxes int
}

func (r *recordingRenderer) DrawBox(x, y, w, h int, style styling.DrawStyling) { r.boxes++ }
func (r *recordingRenderer) DrawText(x, y, w, h int, style styling.DrawStyling, text string) {
	r.texts = append(r.texts, drawnText{x: x, y: y, text: text})
}
func (r *recordingRenderer) Dimensions() (x, y, w, h int) { return 0, 0, 120, 40 }

func (r *recordingRenderer) contains(s string) bool {
	for _, t := range r.texts {
		if strings.Contains(t.text, s) {
			return true
		}
	}
	return false
}

func testStylesheet(t *testing.T) *styling.Stylesheet {
	style, err := styling.StyleFromHex("#000000", "#ffffff")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	return &styling.Stylesheet{
		Normal: style, Selected: style, Header: style,
		Control: style, ControlActive: style, ControlDisabled: style,
		Placeholder: style, Favorite: style,
		Editor: style, EditorLabel: style,
		Error: style, SunTimes: style,
		Status: style, StatusWarn: style, StatusError: style,
		Help: style,
	}
}

func dims(w, h int) func() (x, y, w, h int) {
	return func() (int, int, int, int) { return 0, 0, w, h }
}

var testRef = model.Reference{
	Destinations: []model.Destination{
		{ID: "ams", Name: "Amsterdam", Description: "Canals"},
		{ID: "gva", Name: "Geneva"},
	},
	Offers: []model.OfferGroup{
		{Type: model.PointTypeFlight, Offers: []model.Offer{
			{ID: "luggage", Title: "Add luggage", Price: 30},
			{ID: "comfort", Title: "Comfort class", Price: 100},
		}},
	},
}

var base = time.Date(2024, time.March, 18, 10, 0, 0, 0, time.UTC)

func testPoint(id string) model.Point {
	return model.Point{
		ID:          model.PointID(id),
		Type:        model.PointTypeFlight,
		Start:       base,
		End:         base.Add(90 * time.Minute),
		Destination: "ams",
		BasePrice:   20,
		Offers:      []model.OfferID{},
	}
}

type manualTimer struct {
	pending []func()
	posted  []func()
}

func (m *manualTimer) after(d time.Duration, f func()) { m.pending = append(m.pending, f) }
func (m *manualTimer) post(f func())                  { m.posted = append(m.posted, f) }
func (m *manualTimer) fire() {
	for _, f := range m.pending {
		f()
	}
	m.pending = nil
	for _, f := range m.posted {
		f()
	}
	m.posted = nil
}

func newTestList(t *testing.T, blocked *bool) (*panes.ListPane, *recordingRenderer, *manualTimer) {
	r := &recordingRenderer{}
	timer := &manualTimer{}
	if blocked == nil {
		blocked = new(bool)
	}
	list := panes.NewListPane(
		r, dims(120, 30), testStylesheet(t),
		timer.post,
		func() bool { return *blocked },
		panes.WithTimer(timer.after),
		panes.WithLocation(time.UTC),
	)
	return list, r, timer
}

type handlerCalls struct {
	edits     int
	favorites int
	submitted []model.Point
	deleted   []model.Point
	cancels   int
}

func (c *handlerCalls) handlers() presenter.PointHandlers {
	return presenter.PointHandlers{
		OnEditClick:     func() { c.edits++ },
		OnFavoriteClick: func() { c.favorites++ },
		OnFormSubmit:    func(p model.Point) { c.submitted = append(c.submitted, p) },
		OnDeleteClick:   func(p model.Point) { c.deleted = append(c.deleted, p) },
		OnCancel:        func() { c.cancels++ },
	}
}

func TestListPaneRows(t *testing.T) {
	t.Run("creation order with new editor on top", func(t *testing.T) {
		list, _, _ := newTestList(t, nil)
		a := list.NewPointViews(testRef, presenter.PointHandlers{})
		a.ShowPoint(testPoint("a"))
		b := list.NewPointViews(testRef, presenter.PointHandlers{})
		b.ShowPoint(testPoint("b"))
		n := list.NewPointViews(testRef, presenter.PointHandlers{})
		n.ShowEditor(model.BlankPoint(testRef, base), presenter.EditorState{IsNew: true})

		rows := list.Rows()
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[0] != n || rows[1] != a || rows[2] != b {
			t.Error("expected new editor first, then creation order")
		}
		if list.ActiveEditor() != n {
			t.Error("expected the new editor to be active")
		}
		if list.Selected() != n {
			t.Error("expected the opened editor to be selected")
		}
	})

	t.Run("remove", func(t *testing.T) {
		list, _, _ := newTestList(t, nil)
		a := list.NewPointViews(testRef, presenter.PointHandlers{})
		a.ShowPoint(testPoint("a"))
		b := list.NewPointViews(testRef, presenter.PointHandlers{})
		b.ShowPoint(testPoint("b"))

		a.Remove()
		rows := list.Rows()
		if len(rows) != 1 || rows[0].Point().ID != "b" {
			t.Errorf("expected only b left, got %d rows", len(rows))
		}
		b.Remove()
		if list.Selected() != nil {
			t.Error("expected no selection on empty list")
		}
	})
}

func TestListPaneSelection(t *testing.T) {
	list, _, _ := newTestList(t, nil)
	for _, id := range []string{"a", "b", "c"} {
		list.NewPointViews(testRef, presenter.PointHandlers{}).ShowPoint(testPoint(id))
	}

	if list.Selected().Point().ID != "a" {
		t.Errorf("expected a selected initially, got %s", list.Selected().Point().ID)
	}
	list.SelectNext()
	list.SelectNext()
	list.SelectNext()
	if list.Selected().Point().ID != "c" {
		t.Errorf("expected selection to stop at c, got %s", list.Selected().Point().ID)
	}
	list.SelectFirst()
	list.SelectPrev()
	if list.Selected().Point().ID != "a" {
		t.Errorf("expected a, got %s", list.Selected().Point().ID)
	}
	list.SelectLast()
	if list.Selected().Point().ID != "c" {
		t.Errorf("expected c, got %s", list.Selected().Point().ID)
	}

	t.Run("survives re-render", func(t *testing.T) {
		list.SelectAt(1)
		for _, v := range list.Rows() {
			v.Remove()
		}
		for _, id := range []string{"c", "b", "a"} {
			list.NewPointViews(testRef, presenter.PointHandlers{}).ShowPoint(testPoint(id))
		}
		if list.Selected().Point().ID != "b" {
			t.Errorf("expected b to stay selected, got %s", list.Selected().Point().ID)
		}
	})
}

func TestItemViewEditor(t *testing.T) {
	setup := func(t *testing.T) (*panes.ItemView, *handlerCalls) {
		list, _, _ := newTestList(t, nil)
		calls := &handlerCalls{}
		views := list.NewPointViews(testRef, calls.handlers())
		views.ShowEditor(testPoint("a"), presenter.EditorState{})
		return list.Rows()[0], calls
	}

	t.Run("type cycling resets offers", func(t *testing.T) {
		v, _ := setup(t)
		v.ToggleOffer(1)
		if draft := v.Draft(); !draft.HasOffer("luggage") {
			t.Fatal("expected luggage selected")
		}
		v.CycleType(1)
		if v.Draft().Type != model.PointTypeCheckIn {
			t.Errorf("expected check-in after flight, got %s", v.Draft().Type)
		}
		if len(v.Draft().Offers) != 0 {
			t.Error("expected offers to be cleared")
		}
		v.CycleType(-1)
		v.CycleType(-5)
		if v.Draft().Type != model.PointTypeTaxi {
			t.Errorf("expected taxi, got %s", v.Draft().Type)
		}
		v.CycleType(-1)
		if v.Draft().Type != model.PointTypeRestaurant {
			t.Errorf("expected wrap to restaurant, got %s", v.Draft().Type)
		}
	})

	t.Run("destination cycling wraps", func(t *testing.T) {
		v, _ := setup(t)
		v.CycleDestination(1)
		if v.Draft().Destination != "gva" {
			t.Errorf("expected gva, got %s", v.Draft().Destination)
		}
		v.CycleDestination(1)
		if v.Draft().Destination != "ams" {
			t.Errorf("expected ams, got %s", v.Draft().Destination)
		}
	})

	t.Run("price never negative", func(t *testing.T) {
		v, _ := setup(t)
		v.AdjustPrice(panes.PriceStep)
		if v.Draft().BasePrice != 30 {
			t.Errorf("expected 30, got %d", v.Draft().BasePrice)
		}
		v.AdjustPrice(-100)
		if v.Draft().BasePrice != 0 {
			t.Errorf("expected 0, got %d", v.Draft().BasePrice)
		}
	})

	t.Run("time shifts keep end after start", func(t *testing.T) {
		v, _ := setup(t)
		v.ShiftStart(2 * panes.TimeStep)
		if !v.Draft().End.Equal(v.Draft().Start) {
			t.Errorf("expected end to follow start, got %s..%s", v.Draft().Start, v.Draft().End)
		}
		v.ShiftEnd(-panes.TimeStep)
		if v.Draft().End.Before(v.Draft().Start) {
			t.Error("expected end not before start")
		}
		v.ShiftEnd(panes.TimeStep)
		if draft := v.Draft(); draft.Duration() != time.Hour {
			t.Errorf("expected one hour, got %s", draft.Duration())
		}
	})

	t.Run("offer out of range ignored", func(t *testing.T) {
		v, _ := setup(t)
		v.ToggleOffer(3)
		v.ToggleOffer(0)
		if len(v.Draft().Offers) != 0 {
			t.Error("expected no offers")
		}
	})

	t.Run("submit hands over draft", func(t *testing.T) {
		v, calls := setup(t)
		v.AdjustPrice(10)
		v.Submit()
		if len(calls.submitted) != 1 || calls.submitted[0].BasePrice != 30 {
			t.Fatalf("expected submitted draft with price 30, got %v", calls.submitted)
		}
		if v.Point().BasePrice != 20 {
			t.Error("expected shown point to be unchanged")
		}
	})

	t.Run("disabled editor ignores input but keeps draft", func(t *testing.T) {
		v, calls := setup(t)
		v.AdjustPrice(10)
		v.ShowEditor(testPoint("a"), presenter.EditorState{IsDisabled: true, IsSaving: true})
		v.AdjustPrice(10)
		v.Submit()
		v.Cancel()
		v.Delete()
		if len(calls.submitted)+calls.cancels+len(calls.deleted) != 0 {
			t.Error("expected no handler calls while disabled")
		}
		v.ShowEditor(testPoint("a"), presenter.EditorState{})
		if v.Draft().BasePrice != 30 {
			t.Errorf("expected draft to survive the failed save, got %d", v.Draft().BasePrice)
		}
	})

	t.Run("reopening resets draft", func(t *testing.T) {
		v, calls := setup(t)
		v.AdjustPrice(10)
		v.Cancel()
		if calls.cancels != 1 {
			t.Fatal("expected cancel")
		}
		v.ShowPoint(testPoint("a"))
		v.Edit()
		if calls.edits != 1 {
			t.Error("expected edit click")
		}
		v.ShowEditor(testPoint("a"), presenter.EditorState{})
		if v.Draft().BasePrice != 20 {
			t.Errorf("expected fresh draft, got %d", v.Draft().BasePrice)
		}
	})
}

func TestItemViewShake(t *testing.T) {
	list, _, timer := newTestList(t, nil)
	views := list.NewPointViews(testRef, presenter.PointHandlers{})
	views.ShowPoint(testPoint("a"))
	v := list.Rows()[0]

	done := false
	views.Shake(func() { done = true })
	if !v.Shaking() || done {
		t.Fatal("expected shaking, not done")
	}
	timer.fire()
	if v.Shaking() || !done {
		t.Error("expected shake to be over and done called")
	}
}

func TestListPaneDraw(t *testing.T) {
	list, r, _ := newTestList(t, nil)
	p := testPoint("a")
	p.Offers = []model.OfferID{"luggage"}
	p.IsFavorite = true
	list.NewPointViews(testRef, presenter.PointHandlers{}).ShowPoint(p)
	e := list.NewPointViews(testRef, presenter.PointHandlers{})
	e.ShowEditor(testPoint("b"), presenter.EditorState{IsSaving: true, IsDisabled: true})

	list.Draw()

	for _, expected := range []string{"Mar 18", "Flight Amsterdam", "10:00 - 11:30", "01H 30M", "€ 20", "★", "Add luggage", "Edit point (saving...)", "Canals", "18/03/24 10:00", "total € 20"} {
		if !r.contains(expected) {
			t.Errorf("expected '%s' to be drawn", expected)
		}
	}
}

func TestControlsPane(t *testing.T) {
	r := &recordingRenderer{}
	p := panes.NewControlsPane(r, dims(120, 1), testStylesheet(t))
	selected := []model.FilterType{}
	p.SetFilterHandler(func(f model.FilterType) { selected = append(selected, f) })

	p.ShowSort(model.SortPrice)
	p.ShowFilters(model.FilterEverything, []sortfilter.FilterInfo{
		{Type: model.FilterEverything, HasPoints: true},
		{Type: model.FilterFuture, HasPoints: false},
		{Type: model.FilterPresent, HasPoints: true},
		{Type: model.FilterPast, HasPoints: true},
	})

	if p.CurrentSort() != model.SortPrice {
		t.Errorf("expected price sort, got %s", p.CurrentSort())
	}
	p.NextFilter()
	if len(selected) != 1 || selected[0] != model.FilterPresent {
		t.Errorf("expected present (future has no points), got %v", selected)
	}

	p.Draw()
	for _, expected := range []string{"PRICE", "EVERYTHING", "FUTURE", "PAST"} {
		if !r.contains(expected) {
			t.Errorf("expected '%s' to be drawn", expected)
		}
	}

	t.Run("nothing else enabled", func(t *testing.T) {
		selected = nil
		p.ShowFilters(model.FilterEverything, []sortfilter.FilterInfo{
			{Type: model.FilterEverything, HasPoints: false},
			{Type: model.FilterFuture, HasPoints: false},
		})
		p.NextFilter()
		if len(selected) != 0 {
			t.Errorf("expected no selection, got %v", selected)
		}
	})
}

func TestInfoAndPlaceholderPanes(t *testing.T) {
	r := &recordingRenderer{}
	info := panes.NewInfoPane(r, dims(80, 2), testStylesheet(t))
	info.ShowInfo(presenter.TripInfo{Title: "Amsterdam — Geneva", Start: base, End: base.Add(72 * time.Hour), Cost: 150})
	info.Draw()
	for _, expected := range []string{"Amsterdam — Geneva", "Total: € 150", "Mar 18 - 21"} {
		if !r.contains(expected) {
			t.Errorf("expected '%s' to be drawn", expected)
		}
	}
	info.Remove()
	if _, shown := info.Shown(); shown {
		t.Error("expected info to be removed")
	}

	placeholder := panes.NewPlaceholderPane(r, dims(80, 10), testStylesheet(t))
	if placeholder.IsVisible() {
		t.Error("expected hidden placeholder without message")
	}
	placeholder.ShowMessage("Loading...")
	if !placeholder.IsVisible() || placeholder.Message() != "Loading..." {
		t.Error("expected visible loading placeholder")
	}
	placeholder.Remove()
	if placeholder.IsVisible() {
		t.Error("expected placeholder removed")
	}
}

func TestBusyOverlay(t *testing.T) {
	timer := &manualTimer{}
	o := panes.NewBusyOverlay(&recordingRenderer{}, dims(80, 10), testStylesheet(t), timer.post)

	o.Show()
	if o.Shown() {
		t.Error("expected state change to wait for the loop")
	}
	timer.fire()
	if !o.Shown() || !o.IsVisible() {
		t.Error("expected overlay shown")
	}
	o.Hide()
	timer.fire()
	if o.Shown() {
		t.Error("expected overlay hidden")
	}
}

func TestLayout(t *testing.T) {
	l := panes.NewLayout(dims(100, 30))
	_, y, _, h := l.List()
	if y != 3 || h != 26 {
		t.Errorf("expected list at 3 with height 26, got %d/%d", y, h)
	}
	_, y, _, h = l.Status()
	if y != 29 || h != 1 {
		t.Errorf("expected status on last line, got %d/%d", y, h)
	}
	x, _, w, _ := l.Help()
	if w != 60 || x != 20 {
		t.Errorf("expected centered 60 wide help, got x=%d w=%d", x, w)
	}
}

func TestStatusPane(t *testing.T) {
	logs := &potatolog.MemoryLogReaderWriter{}
	logger := zerolog.New(logs)
	pending := ""

	r := &recordingRenderer{}
	p := panes.NewStatusPane(
		r, dims(120, 1), testStylesheet(t),
		logs,
		func() string { return "LIST" },
		func() string { return pending },
		func() int { return 3 },
	)

	p.Draw()
	if !r.contains("-- LIST --") || !r.contains("3 points") {
		t.Errorf("expected mode and count, got %v", r.texts)
	}

	pending = "g"
	logger.Info().Msg("loaded")
	logger.Warn().Str("error", "timeout").Msg("could not save point")
	logger.Info().Msg("retrying")
	r.texts = nil
	p.Draw()
	if !r.contains("could not save point: timeout") {
		t.Errorf("expected the latest warning, got %v", r.texts)
	}
	if r.contains("retrying") {
		t.Error("expected info entries to be skipped")
	}
	found := false
	for _, text := range r.texts {
		if text.text == "g" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the pending sequence, got %v", r.texts)
	}
}

func TestHelpPane(t *testing.T) {
	shown := false
	r := &recordingRenderer{}
	p := panes.NewHelpPane(
		r, dims(60, 10), testStylesheet(t),
		func() bool { return shown },
		func() input.Help {
			return input.Help{"j": "select-next", "<down>": "select-next", "q": "quit", "<c-c>": "quit"}
		},
	)
	if p.IsVisible() {
		t.Error("expected the help to be hidden")
	}
	shown = true
	if !p.IsVisible() {
		t.Error("expected the help to be shown")
	}

	p.Draw()
	if !r.contains("j, <down>") || !r.contains("q, <c-c>") {
		t.Errorf("expected keys grouped by action, got %v", r.texts)
	}
	quit, next := -1, -1
	for _, text := range r.texts {
		if strings.Contains(text.text, "quit") {
			quit = text.y
		}
		if strings.Contains(text.text, "select-next") {
			next = text.y
		}
	}
	if quit < 0 || next < 0 || quit > next {
		t.Errorf("expected actions in alphabetical order, got %v", r.texts)
	}
}
