package model

import "context"

// DataProvider is the abstracted data provider, which can be implemented over
// various storage systems (a remote REST API, a local database, memory).
//
// Update and add return the provider's version of the point, which is what
// gets committed to the model.
type DataProvider interface {
	GetPoints(ctx context.Context) ([]Point, error)
	GetDestinations(ctx context.Context) ([]Destination, error)
	GetOffers(ctx context.Context) ([]OfferGroup, error)

	UpdatePoint(ctx context.Context, p Point) (Point, error)
	AddPoint(ctx context.Context, p Point) (Point, error)
	DeletePoint(ctx context.Context, id PointID) error
}
