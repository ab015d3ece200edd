package ui

import (
	"github.com/ja-he/tripplan/internal/styling"
)

// LeafPane is the shared part of panes that make actual draw calls (as
// opposed to panes that only arrange other panes).
type LeafPane struct {
	Renderer   ConstrainedRenderer
	Dims       func() (x, y, w, h int)
	Stylesheet *styling.Stylesheet

	// Visible decides whether the pane is drawn; nil means always.
	Visible func() bool
}

// NewLeafPane returns a LeafPane that is always visible.
func NewLeafPane(renderer ConstrainedRenderer, dimensions func() (x, y, w, h int), stylesheet *styling.Stylesheet) LeafPane {
	return LeafPane{
		Renderer:   renderer,
		Dims:       dimensions,
		Stylesheet: stylesheet,
	}
}

// Dimensions returns the pane's current region.
func (p *LeafPane) Dimensions() (x, y, w, h int) {
	return p.Dims()
}

// IsVisible returns whether the pane is drawn.
func (p *LeafPane) IsVisible() bool { return p.Visible == nil || p.Visible() }
