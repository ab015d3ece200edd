package panes

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/ui"
)

// RootPane draws its subpanes over each other in order, wrapped in a full
// render cycle of the screen.
type RootPane struct {
	frame      ui.Frame
	dimensions func() (x, y, w, h int)

	subpanes []ui.Pane
}

// Dimensions gives the dimensions (x-axis offset, y-axis offset, width,
// height) for this pane.
func (p *RootPane) Dimensions() (x, y, w, h int) { return p.dimensions() }

// IsVisible always returns true.
func (p *RootPane) IsVisible() bool { return true }

// Draw draws all visible subpanes.
func (p *RootPane) Draw() {
	p.frame.Clear()
	for _, pane := range p.subpanes {
		if !pane.IsVisible() {
			continue
		}
		log.Trace().Msgf("drawing %T", pane)
		pane.Draw()
	}
	p.frame.Show()
}

// NewRootPane constructs and returns a new RootPane drawing the given
// subpanes back to front.
func NewRootPane(
	frame ui.Frame,
	dimensions func() (x, y, w, h int),
	subpanes ...ui.Pane,
) *RootPane {
	return &RootPane{
		frame:      frame,
		dimensions: dimensions,
		subpanes:   subpanes,
	}
}

// Layout splits the screen into the regions of the list UI.
type Layout struct {
	screen func() (x, y, w, h int)
}

// NewLayout returns a layout over the given screen dimensions.
func NewLayout(screen func() (x, y, w, h int)) *Layout {
	return &Layout{screen: screen}
}

const (
	infoHeight     = 2
	controlsHeight = 1
	statusHeight   = 1
)

// Info is the trip summary region at the top.
func (l *Layout) Info() (x, y, w, h int) {
	sx, sy, sw, _ := l.screen()
	return sx, sy, sw, infoHeight
}

// Controls is the sort and filter bar below the summary.
func (l *Layout) Controls() (x, y, w, h int) {
	sx, sy, sw, _ := l.screen()
	return sx, sy + infoHeight, sw, controlsHeight
}

// List is the region between the controls and the status bar.
func (l *Layout) List() (x, y, w, h int) {
	sx, sy, sw, sh := l.screen()
	top := infoHeight + controlsHeight
	return sx, sy + top, sw, max(sh-top-statusHeight, 0)
}

// Status is the bottom line.
func (l *Layout) Status() (x, y, w, h int) {
	sx, sy, sw, sh := l.screen()
	return sx, sy + sh - statusHeight, sw, statusHeight
}

// Help is a centered popup region.
func (l *Layout) Help() (x, y, w, h int) {
	sx, sy, sw, sh := l.screen()
	w = min(sw-4, 60)
	h = min(sh-4, 40)
	return sx + (sw-w)/2, sy + (sh-h)/2, w, h
}
