package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ja-he/tripplan/internal/config"
	"github.com/ja-he/tripplan/internal/model"
)

// AddCommand contains flags for the `add` command line command, for
// `go-flags` to parse command line args into.
type AddCommand struct {
	Type        string   `short:"t" long:"type" default:"flight" description:"the type of the added point" value-name:"<type>"`
	Destination string   `short:"d" long:"destination" description:"the destination ID of the added point" value-name:"<id>" required:"true"`
	From        string   `short:"f" long:"from" description:"the time at which the point begins" value-name:"<yyyy-mm-ddTHH:MM>" required:"true"`
	To          string   `short:"u" long:"to" description:"the time at which the point ends" value-name:"<yyyy-mm-ddTHH:MM>" required:"true"`
	Price       int      `short:"p" long:"price" description:"the base price"`
	Offers      []string `short:"o" long:"offer" description:"an offer ID to select (repeatable)" value-name:"<id>"`
	Favorite    bool     `long:"favorite" description:"mark the point as a favorite"`

	Backend BackendFlags `group:"Backend Options"`
}

const addTimeLayout = "2006-01-02T15:04"

// Execute executes the add command.
// (This gets called by `go-flags` when `add` is provided on the command line)
func (command *AddCommand) Execute(args []string) error {
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

	m := model.NewPointsModel(backend)
	m.Init(ctx)
	if err := m.LoadError(); err != nil {
		return err
	}

	ref := m.Reference()
	point, err := command.point(ref, time.Local)
	if err != nil {
		return err
	}
	if err := m.AddPoint(ctx, model.UpdateMinor, point); err != nil {
		return err
	}
	fmt.Fprintf(output, "added %s %s (%s - %s)\n",
		point.Type.Title(), ref.DestinationName(point.Destination),
		point.Start.Format(addTimeLayout), point.End.Format(addTimeLayout),
	)
	return nil
}

// point builds the point the flags describe and checks it against the
// reference data.
func (command *AddCommand) point(ref model.Reference, loc *time.Location) (model.Point, error) {
	start, err := time.ParseInLocation(addTimeLayout, command.From, loc)
	if err != nil {
		return model.Point{}, fmt.Errorf("could not parse start time (%w)", err)
	}
	end, err := time.ParseInLocation(addTimeLayout, command.To, loc)
	if err != nil {
		return model.Point{}, fmt.Errorf("could not parse end time (%w)", err)
	}

	point := model.Point{
		Type:        model.PointType(strings.ToLower(command.Type)),
		Start:       start,
		End:         end,
		Destination: model.DestinationID(command.Destination),
		BasePrice:   command.Price,
		Offers:      []model.OfferID{},
		IsFavorite:  command.Favorite,
	}
	if err := point.Validate(); err != nil {
		return model.Point{}, err
	}
	if _, ok := ref.Destination(point.Destination); !ok {
		return model.Point{}, fmt.Errorf("unknown destination '%s'", point.Destination)
	}

	available := ref.OffersFor(point.Type)
	for _, id := range command.Offers {
		found := false
		for _, o := range available {
			if string(o.ID) == id {
				found = true
				break
			}
		}
		if !found {
			return model.Point{}, fmt.Errorf("offer '%s' is not available for type '%s'", id, point.Type)
		}
		point.Offers = append(point.Offers, model.OfferID(id))
	}
	return point, nil
}
