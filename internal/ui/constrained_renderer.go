package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/ja-he/tripplan/internal/styling"
)

// CR is a constrained renderer: it draws through another renderer, clipping
// every request to a region that can change between draws (e.g. on resize).
type CR struct {
	renderer   Renderer
	constraint func() (x, y, w, h int)
}

// NewConstrainedRenderer returns a renderer drawing through the given
// renderer but only within the given constraint.
func NewConstrainedRenderer(
	renderer Renderer,
	constraint func() (x, y, w, h int),
) *CR {
	return &CR{
		renderer:   renderer,
		constraint: constraint,
	}
}

// Dimensions returns the current constraint.
func (r *CR) Dimensions() (x, y, w, h int) {
	return r.constraint()
}

// DrawText draws the part of the text that falls within the constraint.
// Single-line text that starts left of the constraint loses its leading cells.
func (r *CR) DrawText(x, y, w, h int, style styling.DrawStyling, text string) {
	cx, cy, cw, ch, ok := r.clip(x, y, w, h)
	if !ok {
		return
	}
	if cx > x && h == 1 {
		text = dropCells(text, cx-x)
	}
	r.renderer.DrawText(cx, cy, cw, ch, style, text)
}

// DrawBox draws the part of the box that falls within the constraint.
func (r *CR) DrawBox(x, y, w, h int, style styling.DrawStyling) {
	cx, cy, cw, ch, ok := r.clip(x, y, w, h)
	if !ok {
		return
	}
	r.renderer.DrawBox(cx, cy, cw, ch, style)
}

// clip intersects the rectangle with the constraint; ok is false if nothing
// of it remains.
func (r *CR) clip(x, y, w, h int) (cx, cy, cw, ch int, ok bool) {
	bx, by, bw, bh := r.constraint()

	left, top := max(x, bx), max(y, by)
	right, bottom := min(x+w, bx+bw), min(y+h, by+bh)
	if right <= left || bottom <= top {
		return 0, 0, 0, 0, false
	}
	return left, top, right - left, bottom - top, true
}

func dropCells(s string, n int) string {
	dropped := 0
	for i, c := range s {
		if dropped >= n {
			return s[i:]
		}
		dropped += runewidth.RuneWidth(c)
	}
	return ""
}
