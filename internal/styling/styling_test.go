package styling

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ja-he/tripplan/internal/config"
)

func TestLighten(t *testing.T) {
	grey := colorful.Color{R: 0x80 / 255.0, G: 0x80 / 255.0, B: 0x80 / 255.0}

	t.Run("0% -> no change", func(t *testing.T) {
		input := colorful.Color{R: 0x12 / 255.0, G: 0x34 / 255.0, B: 0x56 / 255.0}
		if result := lighten(input, 0); !result.AlmostEqualRgb(input) {
			t.Errorf("%s instead of %s", result.Hex(), input.Hex())
		}
	})

	t.Run("100% -> white", func(t *testing.T) {
		input := colorful.Color{R: 0x12 / 255.0, G: 0x34 / 255.0, B: 0x56 / 255.0}
		white := colorful.Color{R: 1, G: 1, B: 1}
		if result := lighten(input, 100); !result.AlmostEqualRgb(white) {
			t.Errorf("%s instead of %s", result.Hex(), white.Hex())
		}
	})

	t.Run("50% -> 50% lighter", func(t *testing.T) {
		expected := colorful.Color{R: 0xc0 / 255.0, G: 0xc0 / 255.0, B: 0xc0 / 255.0}
		if result := lighten(grey, 50); !result.AlmostEqualRgb(expected) {
			t.Errorf("%s instead of %s", result.Hex(), expected.Hex())
		}
	})

	t.Run("75% lighter <=> 50% lighter then 50% lighter again", func(t *testing.T) {
		a := lighten(grey, 75)
		b := lighten(lighten(grey, 50), 50)
		if !a.AlmostEqualRgb(b) {
			t.Errorf("%s != %s (dist: %f)", a.Hex(), b.Hex(), a.DistanceRgb(b))
		}
	})
}

func TestDarken(t *testing.T) {
	grey := colorful.Color{R: 0x80 / 255.0, G: 0x80 / 255.0, B: 0x80 / 255.0}
	black := colorful.Color{}
	if result := darken(grey, 100); !result.AlmostEqualRgb(black) {
		t.Errorf("expected black, got %s", result.Hex())
	}
}

func TestDimmed(t *testing.T) {
	t.Run("dark background gets darker", func(t *testing.T) {
		s, err := StyleFromHex("#ffffff", "#404040")
		if err != nil {
			t.Fatal(err)
		}
		_, bg, _ := s.DefaultDimmed().AsTcell().Decompose()
		if bg.Hex() >= tcell.NewHexColor(0x404040).Hex() {
			t.Errorf("expected a darker background than #404040, got #%06x", bg.Hex())
		}
	})

	t.Run("light background gets lighter", func(t *testing.T) {
		s, err := StyleFromHex("#000000", "#c0c0c0")
		if err != nil {
			t.Fatal(err)
		}
		_, bg, _ := s.DefaultDimmed().AsTcell().Decompose()
		if bg.Hex() <= tcell.NewHexColor(0xc0c0c0).Hex() {
			t.Errorf("expected a lighter background than #c0c0c0, got #%06x", bg.Hex())
		}
	})
}

func TestNewStylesheetFromConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, theme := range []config.ColorschemeType{config.Dark, config.Light} {
			if _, err := NewStylesheetFromConfig(config.Default(theme).Stylesheet); err != nil {
				t.Errorf("default stylesheet %d invalid: %s", theme, err)
			}
		}
	})

	t.Run("invalid color", func(t *testing.T) {
		c := config.Default(config.Dark).Stylesheet
		c.Error.Fg = "red"
		if _, err := NewStylesheetFromConfig(c); err == nil {
			t.Error("expected an error for a non-hex color")
		}
	})

	t.Run("font style", func(t *testing.T) {
		s, err := StyleFromConfig(config.Styling{Fg: "#ffffff", Bg: "#000000", Style: &config.FontStyle{Bold: true}})
		if err != nil {
			t.Fatal(err)
		}
		_, _, attrs := s.AsTcell().Decompose()
		if attrs&tcell.AttrBold == 0 {
			t.Error("expected bold")
		}
	})
}

func TestDerivedStylesAreCopies(t *testing.T) {
	s, err := StyleFromHex("#ffffff", "#000000")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Bolded().Italicized().DefaultDimmed()
	_, _, attrs := s.AsTcell().Decompose()
	if attrs&(tcell.AttrBold|tcell.AttrItalic) != 0 {
		t.Error("deriving a style changed the original")
	}
	_, _, attrs = s.Bolded().Italicized().AsTcell().Decompose()
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrItalic == 0 {
		t.Error("expected bold and italic")
	}
}
