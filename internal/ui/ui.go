// Package ui holds the drawing abstractions the panes are built on.
package ui

import (
	"github.com/ja-he/tripplan/internal/styling"
)

// Pane is a region of the screen that knows how to draw itself.
//
// Panes are drawn by their parent in order; later panes are drawn over
// earlier ones.
type Pane interface {
	Draw()
	IsVisible() bool
	Dimensions() (x, y, w, h int)
}

// Renderer draws boxes and text at absolute screen coordinates.
type Renderer interface {
	// DrawBox fills the rectangle with the style's background.
	DrawBox(x, y, w, h int, style styling.DrawStyling)
	// DrawText draws text into the rectangle, wrapping at its width.
	DrawText(x, y, w, h int, style styling.DrawStyling, text string)
}

// ConstrainedRenderer is a Renderer that never draws outside of its
// Dimensions.
type ConstrainedRenderer interface {
	Renderer
	Dimensions() (x, y, w, h int)
}

// Frame brackets a render cycle: everything drawn between Clear and Show
// becomes visible at once.
type Frame interface {
	Clear()
	Show()
}
