package config

// Default returns the default configuration with the colorscheme for the
// given type (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	return Config{
		Stylesheet:  defaultStylesheet(colorschemeType),
		KeyBindings: defaultKeyBindings(),
		Blocker: Blocker{
			LowerLimit: "100ms",
			UpperLimit: "100ms",
		},
		Backend: Backend{
			Kind:           "sqlite",
			SQLitePath:     "trip.sqlite",
			RequestTimeout: "10s",
		},
	}
}

func defaultKeyBindings() KeyBindings {
	return KeyBindings{
		List: map[string]string{
			"j":      "select-next",
			"k":      "select-prev",
			"<down>": "select-next",
			"<up>":   "select-prev",
			"gg":     "select-first",
			"G":      "select-last",
			"e":      "edit",
			"<cr>":   "edit",
			"f":      "toggle-favorite",
			"dd":     "delete",
			"n":      "new-point",
			"1":      "sort-day",
			"2":      "sort-event",
			"3":      "sort-time",
			"4":      "sort-price",
			"5":      "sort-offers",
			"F":      "next-filter",
			"?":      "toggle-help",
			"q":      "quit",
			"<c-c>":  "quit",
		},
		Editor: map[string]string{
			"t":     "next-type",
			"T":     "prev-type",
			"d":     "next-destination",
			"D":     "prev-destination",
			"+":     "increase-price",
			"-":     "decrease-price",
			"h":     "start-earlier",
			"l":     "start-later",
			"H":     "end-earlier",
			"L":     "end-later",
			"1":     "toggle-offer-1",
			"2":     "toggle-offer-2",
			"3":     "toggle-offer-3",
			"4":     "toggle-offer-4",
			"5":     "toggle-offer-5",
			"6":     "toggle-offer-6",
			"7":     "toggle-offer-7",
			"8":     "toggle-offer-8",
			"9":     "toggle-offer-9",
			"s":     "save",
			"<cr>":  "save",
			"x":     "delete",
			"<esc>": "cancel",
		},
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Light {
		return Stylesheet{
			Normal:          Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			Selected:        Styling{Fg: "#000000", Bg: "#dce8f5", Style: &FontStyle{}},
			Header:          Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{Bold: true}},
			Control:         Styling{Fg: "#404040", Bg: "#f0f0f0", Style: &FontStyle{}},
			ControlActive:   Styling{Fg: "#ffffff", Bg: "#0065a3", Style: &FontStyle{Bold: true}},
			ControlDisabled: Styling{Fg: "#c0c0c0", Bg: "#f0f0f0", Style: &FontStyle{Italic: true}},
			Placeholder:     Styling{Fg: "#808080", Bg: "#ffffff", Style: &FontStyle{Italic: true}},
			Favorite:        Styling{Fg: "#cc8f00", Bg: "#ffffff", Style: &FontStyle{Bold: true}},
			Editor:          Styling{Fg: "#000000", Bg: "#cccccc", Style: &FontStyle{}},
			EditorLabel:     Styling{Fg: "#404040", Bg: "#cccccc", Style: &FontStyle{Bold: true}},
			Error:           Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
			SunTimes:        Styling{Fg: "#734700", Bg: "#fff0cc", Style: &FontStyle{}},
			Status:          Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			StatusWarn:      Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
			StatusError:     Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
			Help:            Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
		}
	}
	return Stylesheet{
		Normal:          Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
		Selected:        Styling{Fg: "#ffffff", Bg: "#203040", Style: &FontStyle{}},
		Header:          Styling{Fg: "#f0f0f0", Bg: "#202020", Style: &FontStyle{Bold: true}},
		Control:         Styling{Fg: "#c0c0c0", Bg: "#202020", Style: &FontStyle{}},
		ControlActive:   Styling{Fg: "#ffffff", Bg: "#0065a3", Style: &FontStyle{Bold: true}},
		ControlDisabled: Styling{Fg: "#505050", Bg: "#202020", Style: &FontStyle{Italic: true}},
		Placeholder:     Styling{Fg: "#808080", Bg: "#000000", Style: &FontStyle{Italic: true}},
		Favorite:        Styling{Fg: "#ffcc00", Bg: "#000000", Style: &FontStyle{Bold: true}},
		Editor:          Styling{Fg: "#ffffff", Bg: "#404040", Style: &FontStyle{}},
		EditorLabel:     Styling{Fg: "#c0c0c0", Bg: "#404040", Style: &FontStyle{Bold: true}},
		Error:           Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
		SunTimes:        Styling{Fg: "#fff0cc", Bg: "#734700", Style: &FontStyle{}},
		Status:          Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{}},
		StatusWarn:      Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
		StatusError:     Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
		Help:            Styling{Fg: "#ffffff", Bg: "#404040", Style: &FontStyle{}},
	}
}
