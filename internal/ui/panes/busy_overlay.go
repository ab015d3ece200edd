package panes

import (
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// BusyOverlay is the visual lock over the list while an action is pending.
// Implements blocker.Overlay.
//
// Show and Hide may be called from any goroutine; the state change is posted
// onto the UI loop, so Shown and Draw must only be called on the loop.
type BusyOverlay struct {
	ui.LeafPane

	post  func(func())
	shown bool
}

// Show locks the list.
func (o *BusyOverlay) Show() { o.post(func() { o.shown = true }) }

// Hide unlocks the list.
func (o *BusyOverlay) Hide() { o.post(func() { o.shown = false }) }

// Shown returns whether the list is locked.
func (o *BusyOverlay) Shown() bool { return o.shown }

// Draw draws the busy label in the top right corner of the locked region.
func (o *BusyOverlay) Draw() {
	if !o.shown {
		return
	}
	x, y, w, _ := o.Dimensions()
	const label = " working... "
	o.Renderer.DrawText(x+w-len(label), y, len(label), 1, o.Stylesheet.Status.DefaultEmphasized().Italicized(), label)
}

// NewBusyOverlay constructs and returns a new BusyOverlay.
func NewBusyOverlay(renderer ui.ConstrainedRenderer, dimensions func() (x, y, w, h int), stylesheet *styling.Stylesheet, post func(func())) *BusyOverlay {
	o := &BusyOverlay{
		LeafPane: ui.NewLeafPane(renderer, dimensions, stylesheet),
		post:     post,
	}
	o.Visible = o.Shown
	return o
}
