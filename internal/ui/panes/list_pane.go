package panes

import (
	"time"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// ListPane shows the point list: one ItemView per point, in creation order,
// with an open creation editor on top.
// Implements presenter.ViewFactory.
type ListPane struct {
	ui.LeafPane

	rows []*ItemView

	selected      *ItemView
	selectedIndex int
	selectedID    model.PointID
	scroll        int

	blocked       func() bool
	post          func(func())
	after         func(time.Duration, func())
	location      *time.Location
	shakeDuration time.Duration
}

// ListPaneOption configures a ListPane.
type ListPaneOption func(*ListPane)

// WithTimer replaces time.AfterFunc for the error flash.
func WithTimer(after func(time.Duration, func())) ListPaneOption {
	return func(p *ListPane) { p.after = after }
}

// WithLocation sets the location times are displayed in.
func WithLocation(loc *time.Location) ListPaneOption {
	return func(p *ListPane) { p.location = loc }
}

// WithShakeDuration sets how long the error flash lasts.
func WithShakeDuration(d time.Duration) ListPaneOption {
	return func(p *ListPane) { p.shakeDuration = d }
}

// NewListPane constructs and returns a new ListPane.
//
// post must run the given function on the UI loop; blocked reports whether
// the list region is currently locked.
func NewListPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	post func(func()),
	blocked func() bool,
	opts ...ListPaneOption,
) *ListPane {
	p := &ListPane{
		LeafPane:      ui.NewLeafPane(renderer, dimensions, stylesheet),
		post:          post,
		blocked:       blocked,
		after:         func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		location:      time.Local,
		shakeDuration: 600 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewPointViews creates the view pair for a point at the end of the list.
func (p *ListPane) NewPointViews(ref model.Reference, handlers presenter.PointHandlers) presenter.PointViews {
	v := &ItemView{
		list:     p,
		ref:      ref,
		handlers: handlers,
	}
	p.rows = append(p.rows, v)
	return v
}

// Rows returns the views in the order they are drawn.
func (p *ListPane) Rows() []*ItemView {
	result := make([]*ItemView, 0, len(p.rows))
	for _, v := range p.rows {
		if v.editing && v.state.IsNew {
			result = append(result, v)
		}
	}
	for _, v := range p.rows {
		if !(v.editing && v.state.IsNew) {
			result = append(result, v)
		}
	}
	return result
}

// Selected returns the selected view or nil for an empty list.
func (p *ListPane) Selected() *ItemView {
	rows := p.Rows()
	if len(rows) == 0 {
		return nil
	}
	if p.selected != nil && !p.selected.removed {
		return p.selected
	}
	if p.selectedIndex >= len(rows) {
		p.selectedIndex = len(rows) - 1
	}
	if p.selectedIndex < 0 {
		p.selectedIndex = 0
	}
	p.selected = rows[p.selectedIndex]
	return p.selected
}

// ActiveEditor returns the view whose editor is open or nil.
func (p *ListPane) ActiveEditor() *ItemView {
	for _, v := range p.Rows() {
		if v.editing {
			return v
		}
	}
	return nil
}

// SelectNext selects the view below the current selection.
func (p *ListPane) SelectNext() { p.selectBy(1) }

// SelectPrev selects the view above the current selection.
func (p *ListPane) SelectPrev() { p.selectBy(-1) }

// SelectFirst selects the topmost view.
func (p *ListPane) SelectFirst() { p.SelectAt(0) }

// SelectLast selects the bottommost view.
func (p *ListPane) SelectLast() { p.SelectAt(len(p.rows) - 1) }

func (p *ListPane) selectBy(delta int) {
	current := p.Selected()
	if current == nil {
		return
	}
	for i, v := range p.Rows() {
		if v == current {
			p.SelectAt(i + delta)
			return
		}
	}
}

// SelectAt selects the view at the given position of Rows, clamped to the
// list.
func (p *ListPane) SelectAt(i int) {
	rows := p.Rows()
	if len(rows) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	p.selected = rows[i]
	p.selectedIndex = i
	p.selectedID = rows[i].point.ID
}

// focus selects the given view.
func (p *ListPane) focus(v *ItemView) {
	for i, row := range p.Rows() {
		if row == v {
			p.SelectAt(i)
			return
		}
	}
}

// noticeShown lets a view that shows the previously selected point (after a
// re-render) take the selection back.
func (p *ListPane) noticeShown(v *ItemView) {
	if v.point.ID == "" || v.point.ID != p.selectedID {
		return
	}
	if p.selected == nil || p.selected.removed {
		p.selected = v
	}
}

func (p *ListPane) remove(v *ItemView) {
	for i := range p.rows {
		if p.rows[i] == v {
			p.rows = append(p.rows[:i], p.rows[i+1:]...)
			break
		}
	}
	if p.selected == v {
		p.selected = nil
	}
}

// Draw draws the rows, scrolled so that the selection is visible.
func (p *ListPane) Draw() {
	x, y, w, h := p.Dimensions()
	style := p.Stylesheet.Normal
	if p.blocked() {
		style = style.DefaultDimmed()
	}
	p.Renderer.DrawBox(x, y, w, h, style)

	rows := p.Rows()
	selected := p.Selected()

	top := 0
	for _, v := range rows {
		if v == selected {
			if top < p.scroll {
				p.scroll = top
			}
			if top+v.height() > p.scroll+h {
				p.scroll = top + v.height() - h
			}
			break
		}
		top += v.height()
	}
	if p.scroll < 0 {
		p.scroll = 0
	}

	line := y - p.scroll
	for _, v := range rows {
		if line >= y+h {
			break
		}
		if line+v.height() > y {
			v.draw(x, line, w, v == selected)
		}
		line += v.height()
	}
}
