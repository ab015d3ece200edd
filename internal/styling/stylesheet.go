package styling

import (
	"fmt"

	"github.com/ja-he/tripplan/internal/config"
)

// Stylesheet represents all styles used by the application for rendering.
type Stylesheet struct {
	Normal   DrawStyling
	Selected DrawStyling
	Header   DrawStyling

	Control         DrawStyling
	ControlActive   DrawStyling
	ControlDisabled DrawStyling

	Placeholder DrawStyling
	Favorite    DrawStyling

	Editor      DrawStyling
	EditorLabel DrawStyling

	Error    DrawStyling
	SunTimes DrawStyling

	Status      DrawStyling
	StatusWarn  DrawStyling
	StatusError DrawStyling

	Help DrawStyling
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet.
func NewStylesheetFromConfig(c config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	for _, entry := range []struct {
		name   string
		target *DrawStyling
		source config.Styling
	}{
		{"normal", &stylesheet.Normal, c.Normal},
		{"selected", &stylesheet.Selected, c.Selected},
		{"header", &stylesheet.Header, c.Header},
		{"control", &stylesheet.Control, c.Control},
		{"control-active", &stylesheet.ControlActive, c.ControlActive},
		{"control-disabled", &stylesheet.ControlDisabled, c.ControlDisabled},
		{"placeholder", &stylesheet.Placeholder, c.Placeholder},
		{"favorite", &stylesheet.Favorite, c.Favorite},
		{"editor", &stylesheet.Editor, c.Editor},
		{"editor-label", &stylesheet.EditorLabel, c.EditorLabel},
		{"error", &stylesheet.Error, c.Error},
		{"sun-times", &stylesheet.SunTimes, c.SunTimes},
		{"status", &stylesheet.Status, c.Status},
		{"status-warn", &stylesheet.StatusWarn, c.StatusWarn},
		{"status-error", &stylesheet.StatusError, c.StatusError},
		{"help", &stylesheet.Help, c.Help},
	} {
		s, err := StyleFromConfig(entry.source)
		if err != nil {
			return nil, fmt.Errorf("invalid styling '%s' (%w)", entry.name, err)
		}
		*entry.target = s
	}

	return &stylesheet, nil
}
