package styling

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// lighten moves the color's lightness the given percentage of the way to
// white.
func lighten(c colorful.Color, percentage int) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l+(1-l)*float64(percentage)/100).Clamped()
}

// darken moves the color's lightness the given percentage of the way to
// black.
func darken(c colorful.Color, percentage int) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l*(1-float64(percentage)/100)).Clamped()
}

func isDark(c colorful.Color) bool {
	_, _, l := c.Hsl()
	return l < 0.5
}
