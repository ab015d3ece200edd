package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ja-he/tripplan/internal/config"
	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/sortfilter"
)

// Flags for the `summarize` command line command, for `go-flags` to parse
// command line args into.
type SummarizeCommand struct {
	Sort   string `short:"s" long:"sort" default:"day" choice:"day" choice:"event" choice:"time" choice:"price" choice:"offers" description:"the order to list points in"`
	Filter string `short:"f" long:"filter" default:"everything" choice:"everything" choice:"future" choice:"present" choice:"past" description:"only summarize the points the filter selects"`

	Verbose bool `long:"verbose" description:"list every point"`

	Backend BackendFlags `group:"Backend Options"`
}

// Executes the summarize command.
// (This gets called by `go-flags` when `summarize` is provided on the command
// line)
func (command *SummarizeCommand) Execute(args []string) error {
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

	points, ref, err := loadTrip(ctx, backend)
	if err != nil {
		return err
	}
	return command.summarize(points, ref, time.Now())
}

func (command *SummarizeCommand) summarize(points []model.Point, ref model.Reference, now time.Time) error {
	view, err := sortfilter.View(model.SortType(command.Sort), model.FilterType(command.Filter), points, now)
	if err != nil {
		return err
	}
	if len(view) == 0 {
		fmt.Fprintln(output, "no points")
		return nil
	}

	info := presenter.ComputeTripInfo(view, ref)
	fmt.Fprintf(output, "%s\n", info.Title)
	fmt.Fprintf(output, "%s - %s\n", info.Start.Format("2006-01-02 15:04"), info.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(output, "%d points, total %d\n", len(view), info.Cost)

	costByType := map[model.PointType]int{}
	for _, p := range view {
		costByType[p.Type] += ref.Cost(p)
	}
	types := make([]model.PointType, 0, len(costByType))
	for t := range costByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(output, "  %-12s %8d\n", t.Title(), costByType[t])
	}

	if command.Verbose {
		fmt.Fprintln(output)
		for _, p := range view {
			favorite := ""
			if p.IsFavorite {
				favorite = " *"
			}
			fmt.Fprintf(
				output, "%s  %s %s  %s  %d%s\n",
				p.Start.Format("2006-01-02 15:04"),
				p.Type.Title(),
				ref.DestinationName(p.Destination),
				p.Duration(),
				ref.Cost(p),
				favorite,
			)
		}
	}
	return nil
}
