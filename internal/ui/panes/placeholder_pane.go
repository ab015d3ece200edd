package panes

import (
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// PlaceholderPane shows a message in place of the list.
// Implements control.PlaceholderView.
type PlaceholderPane struct {
	ui.LeafPane

	message string
}

// ShowMessage shows the given message.
func (p *PlaceholderPane) ShowMessage(msg string) { p.message = msg }

// Remove hides the message.
func (p *PlaceholderPane) Remove() { p.message = "" }

// Message returns the message shown, empty if none.
func (p *PlaceholderPane) Message() string { return p.message }

// Draw draws the message centered in the pane.
func (p *PlaceholderPane) Draw() {
	if p.message == "" {
		return
	}
	x, y, w, h := p.Dimensions()
	msgW := len([]rune(p.message))
	if msgW > w {
		msgW = w
	}
	p.Renderer.DrawText(x+(w-msgW)/2, y+h/2, msgW, 1, p.Stylesheet.Placeholder, p.message)
}

// NewPlaceholderPane constructs and returns a new PlaceholderPane.
func NewPlaceholderPane(renderer ui.ConstrainedRenderer, dimensions func() (x, y, w, h int), stylesheet *styling.Stylesheet) *PlaceholderPane {
	p := &PlaceholderPane{LeafPane: ui.NewLeafPane(renderer, dimensions, stylesheet)}
	p.Visible = func() bool { return p.message != "" }
	return p
}
