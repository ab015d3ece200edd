package model

// DestinationID identifies a destination.
type DestinationID string

// Picture is a photo of a destination.
type Picture struct {
	Src         string `json:"src" yaml:"src"`
	Description string `json:"description" yaml:"description"`
}

// Destination is a static place a point can lead to.
//
// Latitude and Longitude are optional; when both are present, sun times can be
// computed for the destination.
type Destination struct {
	ID          DestinationID `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Pictures    []Picture     `json:"pictures" yaml:"pictures"`
	Latitude    *float64      `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// OfferID identifies an offer.
type OfferID string

// Offer is an optional extra that can be booked with a point.
type Offer struct {
	ID    OfferID `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Price int     `json:"price" yaml:"price"`
}

// OfferGroup holds the offers available for one point type.
type OfferGroup struct {
	Type   PointType `json:"type" yaml:"type"`
	Offers []Offer   `json:"offers" yaml:"offers"`
}

// Reference is the read-only reference data points refer to.
type Reference struct {
	Destinations []Destination
	Offers       []OfferGroup
}

// Destination returns the destination with the given ID, if known.
func (r *Reference) Destination(id DestinationID) (Destination, bool) {
	for _, d := range r.Destinations {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// DestinationName returns the destination's name or the raw ID if the
// destination is unknown.
func (r *Reference) DestinationName(id DestinationID) string {
	if d, ok := r.Destination(id); ok {
		return d.Name
	}
	return string(id)
}

// OffersFor returns the offers available for the given point type.
func (r *Reference) OffersFor(t PointType) []Offer {
	for _, g := range r.Offers {
		if g.Type == t {
			return g.Offers
		}
	}
	return nil
}

// SelectedOffers returns the offers selected for the point, in the order the
// point type's group lists them.
func (r *Reference) SelectedOffers(p Point) []Offer {
	result := []Offer{}
	for _, o := range r.OffersFor(p.Type) {
		if p.HasOffer(o.ID) {
			result = append(result, o)
		}
	}
	return result
}

// Cost returns the point's base price plus the prices of its selected offers.
func (r *Reference) Cost(p Point) int {
	total := p.BasePrice
	for _, o := range r.SelectedOffers(p) {
		total += o.Price
	}
	return total
}
