package model

import (
	"fmt"
	"time"
)

// PointID identifies a point.
type PointID string

// PointType is the category of a point, e.g. a flight or a restaurant visit.
type PointType string

const (
	PointTypeTaxi        PointType = "taxi"
	PointTypeBus         PointType = "bus"
	PointTypeTrain       PointType = "train"
	PointTypeShip        PointType = "ship"
	PointTypeDrive       PointType = "drive"
	PointTypeFlight      PointType = "flight"
	PointTypeCheckIn     PointType = "check-in"
	PointTypeSightseeing PointType = "sightseeing"
	PointTypeRestaurant  PointType = "restaurant"
)

// PointTypes lists all known point types in the order they are offered to
// the user.
var PointTypes = []PointType{
	PointTypeTaxi,
	PointTypeBus,
	PointTypeTrain,
	PointTypeShip,
	PointTypeDrive,
	PointTypeFlight,
	PointTypeCheckIn,
	PointTypeSightseeing,
	PointTypeRestaurant,
}

// Valid returns whether the type is one of the known PointTypes.
func (t PointType) Valid() bool {
	for _, known := range PointTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Title returns the type name as shown to the user, e.g. "Check-in".
func (t PointType) Title() string {
	if t == "" {
		return ""
	}
	r := []rune(string(t))
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}

// Point is a single scheduled activity of a trip.
type Point struct {
	ID          PointID       `json:"id"`
	Type        PointType     `json:"type"`
	Start       time.Time     `json:"date_from"`
	End         time.Time     `json:"date_to"`
	Destination DestinationID `json:"destination"`
	BasePrice   int           `json:"base_price"`
	Offers      []OfferID     `json:"offers"`
	IsFavorite  bool          `json:"is_favorite"`
}

// Duration returns the length of the point's time window.
func (p *Point) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Clone returns a deep copy of the point.
func (p *Point) Clone() Point {
	c := *p
	c.Offers = make([]OfferID, len(p.Offers))
	copy(c.Offers, p.Offers)
	return c
}

func (p *Point) String() string {
	return fmt.Sprintf(
		"%s|%s|%s|%s|%s|%d",
		p.ID,
		p.Type,
		p.Start.Format(time.RFC3339),
		p.End.Format(time.RFC3339),
		p.Destination,
		p.BasePrice,
	)
}

// HasOffer returns whether the given offer is selected for this point.
func (p *Point) HasOffer(id OfferID) bool {
	for _, o := range p.Offers {
		if o == id {
			return true
		}
	}
	return false
}

// ToggleOffer selects the given offer if it is not selected and deselects it
// otherwise.
func (p *Point) ToggleOffer(id OfferID) {
	for i, o := range p.Offers {
		if o == id {
			p.Offers = append(p.Offers[:i], p.Offers[i+1:]...)
			return
		}
	}
	p.Offers = append(p.Offers, id)
}

// Validate checks the invariants of a point that is about to be stored.
func (p *Point) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("unknown point type '%s'", p.Type)
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("point %s ends before it starts", p.String())
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("point %s has a negative price", p.String())
	}
	if p.Destination == "" {
		return fmt.Errorf("point %s has no destination", p.String())
	}
	return nil
}

// SortRelevantChange returns whether the change from a to b touches anything
// a sort or filter type depends on: the time window, the price, the type or
// the selected offers.
func SortRelevantChange(a, b Point) bool {
	return !a.Start.Equal(b.Start) || !a.End.Equal(b.End) ||
		a.BasePrice != b.BasePrice ||
		a.Type != b.Type ||
		!sameOffers(a, b)
}

// sameOffers compares the selected offers regardless of their order.
func sameOffers(a, b Point) bool {
	if len(a.Offers) != len(b.Offers) {
		return false
	}
	for _, o := range a.Offers {
		if !b.HasOffer(o) {
			return false
		}
	}
	return true
}

// BlankPoint returns the point a creation flow starts out with: a one hour
// flight beginning at the next full hour, headed to the first known
// destination.
func BlankPoint(ref Reference, now time.Time) Point {
	start := now.Truncate(time.Hour).Add(time.Hour)
	p := Point{
		Type:   PointTypeFlight,
		Start:  start,
		End:    start.Add(time.Hour),
		Offers: []OfferID{},
	}
	if len(ref.Destinations) > 0 {
		p.Destination = ref.Destinations[0].ID
	}
	return p
}
