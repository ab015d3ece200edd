package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the configuration data as present in a config file at
// '${TRIPPLAN_HOME}/config.yaml'.
type Config struct {
	Stylesheet  Stylesheet  `yaml:"stylesheet"`
	KeyBindings KeyBindings `yaml:"keybindings"`
	Blocker     Blocker     `yaml:"blocker"`
	Backend     Backend     `yaml:"backend"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal          Styling `yaml:"normal"`
	Selected        Styling `yaml:"selected"`
	Header          Styling `yaml:"header"`
	Control         Styling `yaml:"control"`
	ControlActive   Styling `yaml:"control-active"`
	ControlDisabled Styling `yaml:"control-disabled"`
	Placeholder     Styling `yaml:"placeholder"`
	Favorite        Styling `yaml:"favorite"`
	Editor          Styling `yaml:"editor"`
	EditorLabel     Styling `yaml:"editor-label"`
	Error           Styling `yaml:"error"`
	SunTimes        Styling `yaml:"sun-times"`
	Status          Styling `yaml:"status"`
	StatusWarn      Styling `yaml:"status-warn"`
	StatusError     Styling `yaml:"status-error"`
	Help            Styling `yaml:"help"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// KeyBindings map key sequence specifications (e.g. "<c-a>", "gg") to action
// names, separately for the list and for an open editor.
type KeyBindings struct {
	List   map[string]string `yaml:"list"`
	Editor map[string]string `yaml:"editor"`
}

// Blocker configures when the busy overlay is shown.
//
// For format see time.ParseDuration.
type Blocker struct {
	LowerLimit string `yaml:"lower-limit"`
	UpperLimit string `yaml:"upper-limit"`
}

// Backend selects where trip data is stored.
type Backend struct {
	// Kind is one of "rest", "sqlite" and "memory".
	Kind          string `yaml:"kind"`
	Endpoint      string `yaml:"endpoint"`
	Authorization string `yaml:"authorization"`
	SQLitePath    string `yaml:"sqlite-path"`
	SeedPath      string `yaml:"seed-path"`
	// RequestTimeout is in time.ParseDuration format.
	RequestTimeout string `yaml:"request-timeout"`
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	defaultConfig := Default(defaultTheme)

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%s)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)
	if err := result.Validate(); err != nil {
		return defaultConfig, err
	}

	return result, nil
}

// Validate checks the values that are not checked by their consumers.
func (c Config) Validate() error {
	if _, _, err := c.Blocker.Limits(); err != nil {
		return err
	}
	if _, err := c.Backend.Timeout(); err != nil {
		return err
	}
	switch c.Backend.Kind {
	case "rest", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown backend kind '%s'", c.Backend.Kind)
	}
	return nil
}

// Limits returns the parsed lower and upper limit.
func (b Blocker) Limits() (lower, upper time.Duration, err error) {
	lower, err = time.ParseDuration(b.LowerLimit)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid blocker lower limit '%s' (%w)", b.LowerLimit, err)
	}
	upper, err = time.ParseDuration(b.UpperLimit)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid blocker upper limit '%s' (%w)", b.UpperLimit, err)
	}
	if lower < 0 || upper < 0 {
		return 0, 0, fmt.Errorf("blocker limits must not be negative")
	}
	return lower, upper, nil
}

// Timeout returns the parsed request timeout.
func (b Backend) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(b.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request timeout '%s' (%w)", b.RequestTimeout, err)
	}
	return d, nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)
	result.KeyBindings = base.KeyBindings.augmentWith(augment.KeyBindings)

	overwriteIfSet(&result.Blocker.LowerLimit, augment.Blocker.LowerLimit)
	overwriteIfSet(&result.Blocker.UpperLimit, augment.Blocker.UpperLimit)

	overwriteIfSet(&result.Backend.Kind, augment.Backend.Kind)
	overwriteIfSet(&result.Backend.Endpoint, augment.Backend.Endpoint)
	overwriteIfSet(&result.Backend.Authorization, augment.Backend.Authorization)
	overwriteIfSet(&result.Backend.SQLitePath, augment.Backend.SQLitePath)
	overwriteIfSet(&result.Backend.SeedPath, augment.Backend.SeedPath)
	overwriteIfSet(&result.Backend.RequestTimeout, augment.Backend.RequestTimeout)

	return result
}

func (base KeyBindings) augmentWith(augment KeyBindings) KeyBindings {
	merge := func(a, b map[string]string) map[string]string {
		result := make(map[string]string, len(a)+len(b))
		for k, v := range a {
			result[k] = v
		}
		for k, v := range b {
			if v == "" {
				delete(result, k)
				continue
			}
			result[k] = v
		}
		return result
	}
	return KeyBindings{
		List:   merge(base.List, augment.List),
		Editor: merge(base.Editor, augment.Editor),
	}
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.Selected.overwriteIfDefined(augment.Selected)
	result.Header.overwriteIfDefined(augment.Header)
	result.Control.overwriteIfDefined(augment.Control)
	result.ControlActive.overwriteIfDefined(augment.ControlActive)
	result.ControlDisabled.overwriteIfDefined(augment.ControlDisabled)
	result.Placeholder.overwriteIfDefined(augment.Placeholder)
	result.Favorite.overwriteIfDefined(augment.Favorite)
	result.Editor.overwriteIfDefined(augment.Editor)
	result.EditorLabel.overwriteIfDefined(augment.EditorLabel)
	result.Error.overwriteIfDefined(augment.Error)
	result.SunTimes.overwriteIfDefined(augment.SunTimes)
	result.Status.overwriteIfDefined(augment.Status)
	result.StatusWarn.overwriteIfDefined(augment.StatusWarn)
	result.StatusError.overwriteIfDefined(augment.StatusError)
	result.Help.overwriteIfDefined(augment.Help)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		s.Style = &FontStyle{
			Bold:       augment.Style.Bold,
			Italic:     augment.Style.Italic,
			Underlined: augment.Style.Underlined,
		}
	}
}

func overwriteIfSet(s *string, augment string) {
	if augment != "" {
		*s = augment
	}
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)
