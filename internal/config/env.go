package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables that override the backend settings of a config file.
const (
	EnvEndpoint      = "TRIPPLAN_ENDPOINT"
	EnvAuthorization = "TRIPPLAN_AUTHORIZATION"
)

// LoadEnv loads '<dir>/.env' into the process environment. Variables that are
// already set are left alone, and a missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load '%s' (%w)", path, err)
	}
	return nil
}

// WithEnv returns a copy of the backend settings with the endpoint and
// authorization overridden by the environment, where set.
func (b Backend) WithEnv(getenv func(string) string) Backend {
	result := b
	overwriteIfSet(&result.Endpoint, getenv(EnvEndpoint))
	overwriteIfSet(&result.Authorization, getenv(EnvAuthorization))
	return result
}
