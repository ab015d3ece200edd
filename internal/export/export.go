// Package export writes a trip's points as an iCalendar file.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/ja-he/tripplan/internal/model"
)

const productID = "-//ja-he//tripplan//EN"

// Calendar builds a calendar with one VEVENT per point, in chronological
// order. The point ID is used as the UID so re-exports update rather than
// duplicate the events in a subscribing calendar.
func Calendar(points []model.Point, ref model.Reference, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(title(points, ref))

	sorted := make([]model.Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for _, p := range sorted {
		destination := ref.DestinationName(p.Destination)

		event := cal.AddEvent(string(p.ID))
		event.SetDtStampTime(stamp)
		event.SetStartAt(p.Start)
		event.SetEndAt(p.End)
		event.SetSummary(strings.TrimSpace(p.Type.Title() + " " + destination))
		event.SetLocation(destination)
		event.SetDescription(description(p, ref))
		event.AddProperty(ical.ComponentPropertyCategories, string(p.Type))
	}
	return cal
}

// Write serializes the calendar of the points to w.
func Write(w io.Writer, points []model.Point, ref model.Reference, stamp time.Time) error {
	if err := Calendar(points, ref, stamp).SerializeTo(w); err != nil {
		return fmt.Errorf("could not serialize calendar (%w)", err)
	}
	return nil
}

func description(p model.Point, ref model.Reference) string {
	lines := []string{fmt.Sprintf("Price: %d", p.BasePrice)}
	for _, o := range ref.SelectedOffers(p) {
		lines = append(lines, fmt.Sprintf("+ %s (%d)", o.Title, o.Price))
	}
	lines = append(lines, fmt.Sprintf("Total: %d", ref.Cost(p)))
	if p.IsFavorite {
		lines = append(lines, "Favorite")
	}
	return strings.Join(lines, "\n")
}

func title(points []model.Point, ref model.Reference) string {
	seen := map[model.DestinationID]bool{}
	names := []string{}
	for _, p := range points {
		if !seen[p.Destination] {
			seen[p.Destination] = true
			names = append(names, ref.DestinationName(p.Destination))
		}
	}
	if len(names) == 0 {
		return "Trip"
	}
	return "Trip: " + strings.Join(names, ", ")
}
