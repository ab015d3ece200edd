package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/config"
	"github.com/ja-he/tripplan/internal/export"
	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/sortfilter"
	"github.com/ja-he/tripplan/internal/storage"
)

// ExportCommand contains flags for the `export` command line command, for
// `go-flags` to parse command line args into.
type ExportCommand struct {
	Output string `short:"o" long:"output" default:"-" description:"the file to write the calendar to ('-' for stdout)" value-name:"<file>"`
	Filter string `short:"f" long:"filter" default:"everything" choice:"everything" choice:"future" choice:"present" choice:"past" description:"only export the points the filter selects"`

	Backend BackendFlags `group:"Backend Options"`
}

// Execute executes the export command.
// (This gets called by `go-flags` when `export` is provided on the command
// line)
func (command *ExportCommand) Execute(args []string) error {
	home := tripplanHome()
	configData, err := loadConfig(home, config.Dark)
	if err != nil {
		return err
	}

	ctx := context.Background()
	backend, err := openBackend(ctx, home, command.Backend.apply(configData.Backend))
	if err != nil {
		return err
	}
	defer backend.Close()

	now := time.Now()
	points, ref, err := loadTrip(ctx, backend)
	if err != nil {
		return err
	}
	points, err = sortfilter.Filter(model.FilterType(command.Filter), points, now)
	if err != nil {
		return err
	}

	var w io.Writer = output
	if command.Output != "-" {
		file, err := os.Create(command.Output)
		if err != nil {
			return fmt.Errorf("could not create '%s' (%w)", command.Output, err)
		}
		defer file.Close()
		w = file
	}

	if err := export.Write(w, points, ref, now); err != nil {
		return err
	}
	log.Info().Int("points", len(points)).Str("output", command.Output).Msg("exported calendar")
	return nil
}

// loadTrip reads all points and the reference data from the backend.
func loadTrip(ctx context.Context, backend storage.Backend) ([]model.Point, model.Reference, error) {
	m := model.NewPointsModel(backend)
	m.Init(ctx)
	if err := m.LoadError(); err != nil {
		return nil, model.Reference{}, err
	}
	return m.Points(), m.Reference(), nil
}
