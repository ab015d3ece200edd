package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/config"
	"github.com/ja-he/tripplan/internal/storage"
	"github.com/ja-he/tripplan/internal/storage/providers"
)

// output is where commands print their results.
var output io.Writer = os.Stdout

// BackendFlags override the backend settings of the config file.
type BackendFlags struct {
	Kind       string `long:"backend" choice:"rest" choice:"sqlite" choice:"memory" description:"the backend to use (overrides config)"`
	Endpoint   string `long:"endpoint" description:"the REST endpoint (overrides config and env)" value-name:"<url>"`
	SQLitePath string `long:"sqlite-path" description:"the SQLite database file (overrides config)" value-name:"<file>"`
	SeedPath   string `long:"seed" description:"a YAML file of destinations and offers to seed a local backend with" value-name:"<file>"`
}

func (f BackendFlags) apply(b config.Backend) config.Backend {
	result := b
	if f.Kind != "" {
		result.Kind = f.Kind
	}
	if f.Endpoint != "" {
		result.Endpoint = f.Endpoint
	}
	if f.SQLitePath != "" {
		result.SQLitePath = f.SQLitePath
	}
	if f.SeedPath != "" {
		result.SeedPath = f.SeedPath
	}
	return result
}

// tripplanHome returns the directory holding config.yaml, .env and, by
// default, the local database.
func tripplanHome() string {
	home := os.Getenv("TRIPPLAN_HOME")
	if home == "" {
		return filepath.Join(os.Getenv("HOME"), ".config", "tripplan")
	}
	return strings.TrimRight(home, "/")
}

// loadConfig reads '<home>/.env' and '<home>/config.yaml' and returns the
// resulting configuration. A missing config file yields the defaults.
func loadConfig(home string, theme config.ColorschemeType) (config.Config, error) {
	if err := config.LoadEnv(home); err != nil {
		log.Warn().Err(err).Msg("could not load .env file, ignoring")
	}

	yamlData, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		log.Debug().Err(err).Msg("can't read config file, using defaults")
		yamlData = make([]byte, 0)
	}
	configData, err := config.ParseConfigAugmentDefaults(theme, yamlData)
	if err != nil {
		return configData, err
	}
	configData.Backend = configData.Backend.WithEnv(os.Getenv)
	return configData, nil
}

// openBackend opens the configured backend; relative local paths are taken
// relative to home.
func openBackend(ctx context.Context, home string, b config.Backend) (storage.Backend, error) {
	timeout, err := b.Timeout()
	if err != nil {
		return nil, err
	}
	sqlitePath := b.SQLitePath
	if sqlitePath != "" && !filepath.IsAbs(sqlitePath) {
		sqlitePath = filepath.Join(home, sqlitePath)
	}
	log.Debug().Str("backend", b.Kind).Str("endpoint", b.Endpoint).Str("sqlite-path", sqlitePath).Msg("opening backend")
	return providers.Open(ctx, providers.Options{
		Kind:          providers.Kind(b.Kind),
		Endpoint:      b.Endpoint,
		Authorization: b.Authorization,
		Timeout:       timeout,
		SQLitePath:    sqlitePath,
		SeedPath:      b.SeedPath,
	})
}

func parseTheme(theme string) config.ColorschemeType {
	switch theme {
	case "light":
		return config.Light
	default:
		return config.Dark
	}
}
