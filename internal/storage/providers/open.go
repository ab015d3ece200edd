package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/ja-he/tripplan/internal/storage"
)

// Kind names a backend implementation.
type Kind string

const (
	KindREST   Kind = "rest"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Options select and configure a backend.
type Options struct {
	Kind          Kind
	Endpoint      string
	Authorization string
	Timeout       time.Duration
	SQLitePath    string
	// SeedPath is a YAML file of reference data; when set, local backends
	// are (re)seeded from it.
	SeedPath string
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (storage.Backend, error) {
	switch opts.Kind {
	case KindREST:
		return NewRESTProvider(opts.Endpoint, opts.Authorization, opts.Timeout)

	case KindSQLite:
		p, err := NewSQLiteProvider(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		if opts.SeedPath != "" {
			ref, err := storage.NewReferenceFile(opts.SeedPath).Read()
			if err != nil {
				_ = p.Close()
				return nil, err
			}
			if err := p.Seed(ctx, ref); err != nil {
				_ = p.Close()
				return nil, fmt.Errorf("could not seed '%s' (%w)", opts.SQLitePath, err)
			}
		}
		return p, nil

	case KindMemory:
		var ref storage.ReferenceData
		if opts.SeedPath != "" {
			var err error
			ref, err = storage.NewReferenceFile(opts.SeedPath).Read()
			if err != nil {
				return nil, err
			}
		}
		return NewMemoryProvider(nil, ref), nil

	default:
		return nil, fmt.Errorf("unknown backend kind '%s'", opts.Kind)
	}
}
