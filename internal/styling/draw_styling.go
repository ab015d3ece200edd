package styling

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ja-he/tripplan/internal/config"
)

// DrawStyling is the colors and font attributes text is drawn with.
// Derived stylings (dimmed, bolded, ...) are copies; the receiver is never
// changed.
type DrawStyling interface {
	AsTcell() tcell.Style

	// DefaultDimmed fades the styling, e.g. for a list that is busy.
	DefaultDimmed() DrawStyling
	// DefaultEmphasized sets the styling off against its surroundings.
	DefaultEmphasized() DrawStyling

	Italicized() DrawStyling
	Bolded() DrawStyling

	String() string
}

// Style is a renderer-independent DrawStyling.
type Style struct {
	fg, bg colorful.Color

	bold, italic, underlined bool
}

// AsTcell converts the style for drawing to a tcell screen.
func (s Style) AsTcell() tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcell(s.fg)).
		Background(toTcell(s.bg)).
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underlined)
}

// DefaultDimmed moves the background halfway towards its lightness extreme
// and blends the foreground into it.
func (s Style) DefaultDimmed() DrawStyling {
	if isDark(s.bg) {
		s.bg = darken(s.bg, 50)
	} else {
		s.bg = lighten(s.bg, 50)
	}
	s.fg = s.fg.BlendLab(s.bg, 0.5).Clamped()
	return s
}

// DefaultEmphasized bolds the style and moves the background away from its
// lightness extreme.
func (s Style) DefaultEmphasized() DrawStyling {
	if isDark(s.bg) {
		s.bg = lighten(s.bg, 20)
	} else {
		s.bg = darken(s.bg, 20)
	}
	s.bold = true
	return s
}

// Italicized returns an italic copy of the style.
func (s Style) Italicized() DrawStyling {
	s.italic = true
	return s
}

// Bolded returns a bold copy of the style.
func (s Style) Bolded() DrawStyling {
	s.bold = true
	return s
}

func (s Style) String() string {
	return fmt.Sprintf("[fg:%s bg:%s b:%t i:%t u:%t]", s.fg.Hex(), s.bg.Hex(), s.bold, s.italic, s.underlined)
}

// StyleFromHex returns a style with the given '#rrggbb' (or '#rgb') colors.
func StyleFromHex(fg, bg string) (Style, error) {
	fgColor, err := colorful.Hex(fg)
	if err != nil {
		return Style{}, fmt.Errorf("invalid foreground color '%s' (%w)", fg, err)
	}
	bgColor, err := colorful.Hex(bg)
	if err != nil {
		return Style{}, fmt.Errorf("invalid background color '%s' (%w)", bg, err)
	}
	return Style{fg: fgColor, bg: bgColor}, nil
}

// StyleFromConfig constructs a style from its configuration.
func StyleFromConfig(c config.Styling) (DrawStyling, error) {
	s, err := StyleFromHex(c.Fg, c.Bg)
	if err != nil {
		return nil, err
	}
	if c.Style != nil {
		s.bold = c.Style.Bold
		s.italic = c.Style.Italic
		s.underlined = c.Style.Underlined
	}
	return s, nil
}
