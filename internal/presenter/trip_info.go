package presenter

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/sortfilter"
)

// TripInfo is the summary shown above the list.
type TripInfo struct {
	Title string
	Start time.Time
	End   time.Time
	Cost  int
}

// InfoView renders a TripInfo.
type InfoView interface {
	ShowInfo(TripInfo)
	Remove()
}

// maxTitleDestinations is the number of destinations a route title lists
// before eliding the middle ones.
const maxTitleDestinations = 3

// tripInfoSort is the order the summary walks the points in.
var tripInfoSort = model.SortDay

// ComputeTripInfo summarizes the points in chronological order.
func ComputeTripInfo(points []model.Point, ref model.Reference) TripInfo {
	byDay, err := sortfilter.Sort(tripInfoSort, points)
	if err != nil {
		log.Error().Err(err).Msg("could not order points for the trip info")
		return TripInfo{}
	}
	if len(byDay) == 0 {
		return TripInfo{}
	}

	names := []string{}
	cost := 0
	end := byDay[0].End
	for _, p := range byDay {
		names = append(names, ref.DestinationName(p.Destination))
		cost += ref.Cost(p)
		if p.End.After(end) {
			end = p.End
		}
	}

	var title string
	if len(names) > maxTitleDestinations {
		title = names[0] + " — … — " + names[len(names)-1]
	} else {
		title = strings.Join(names, " — ")
	}

	return TripInfo{
		Title: title,
		Start: byDay[0].Start,
		End:   end,
		Cost:  cost,
	}
}

// TripInfoPresenter keeps the summary view in line with the points it is
// given.
type TripInfoPresenter struct {
	view InfoView
}

// NewTripInfoPresenter returns a presenter for the given view.
func NewTripInfoPresenter(view InfoView) *TripInfoPresenter {
	return &TripInfoPresenter{view: view}
}

// Init renders the summary of the points, or removes it if there are none.
func (p *TripInfoPresenter) Init(points []model.Point, ref model.Reference) {
	if len(points) == 0 {
		p.view.Remove()
		return
	}
	p.view.ShowInfo(ComputeTripInfo(points, ref))
}

// Destroy removes the summary.
func (p *TripInfoPresenter) Destroy() {
	p.view.Remove()
}
