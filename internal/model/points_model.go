package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// PointsObserver is notified of every committed change to a PointsModel.
// For UpdateInit the point is the zero value.
type PointsObserver func(UpdateType, Point)

// PointsModel is the authoritative, observable collection of points plus the
// reference data they refer to.
//
// The collection is only ever changed after the data provider confirmed the
// change; observers are then notified on the goroutine that performed the
// change.
type PointsModel struct {
	provider DataProvider

	mtx          sync.RWMutex
	points       []Point
	destinations []Destination
	offers       []OfferGroup
	loadErr      error

	observersMtx sync.Mutex
	observers    []PointsObserver
}

// NewPointsModel returns an empty model backed by the given provider.
func NewPointsModel(provider DataProvider) *PointsModel {
	return &PointsModel{
		provider: provider,
		points:   []Point{},
	}
}

// AddObserver registers an observer.
func (m *PointsModel) AddObserver(o PointsObserver) {
	m.observersMtx.Lock()
	defer m.observersMtx.Unlock()
	m.observers = append(m.observers, o)
}

func (m *PointsModel) notify(t UpdateType, p Point) {
	m.observersMtx.Lock()
	observers := make([]PointsObserver, len(m.observers))
	copy(observers, m.observers)
	m.observersMtx.Unlock()

	for _, o := range observers {
		o(t, p)
	}
}

// Init loads points and reference data from the provider and notifies
// observers with UpdateInit.
// A failed load leaves the model empty and is reported through LoadError; the
// notification is sent regardless so that the UI can leave its loading state.
func (m *PointsModel) Init(ctx context.Context) {
	points, destinations, offers, err := m.fetch(ctx)

	m.mtx.Lock()
	if err != nil {
		log.Error().Err(err).Msg("could not load points")
		m.points, m.destinations, m.offers = []Point{}, nil, nil
	} else {
		m.points, m.destinations, m.offers = points, destinations, offers
		log.Info().Int("points", len(points)).Int("destinations", len(destinations)).Msg("loaded trip data")
	}
	m.loadErr = err
	m.mtx.Unlock()

	m.notify(UpdateInit, Point{})
}

func (m *PointsModel) fetch(ctx context.Context) ([]Point, []Destination, []OfferGroup, error) {
	points, err := m.provider.GetPoints(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error fetching points (%w)", err)
	}
	destinations, err := m.provider.GetDestinations(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error fetching destinations (%w)", err)
	}
	offers, err := m.provider.GetOffers(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error fetching offers (%w)", err)
	}
	return points, destinations, offers, nil
}

// Points returns a snapshot of the collection.
func (m *PointsModel) Points() []Point {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	result := make([]Point, len(m.points))
	for i := range m.points {
		result[i] = m.points[i].Clone()
	}
	return result
}

// Reference returns the destinations and offers.
func (m *PointsModel) Reference() Reference {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return Reference{Destinations: m.destinations, Offers: m.offers}
}

// LoadError returns the error of the last Init, if any.
func (m *PointsModel) LoadError() error {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.loadErr
}

// UpdatePoint asks the provider to update the point and, once confirmed,
// replaces it in the collection and notifies observers with the given update
// type.
func (m *PointsModel) UpdatePoint(ctx context.Context, t UpdateType, p Point) error {
	updated, err := m.provider.UpdatePoint(ctx, p)
	if err != nil {
		return &ActionRejectedError{Action: ActionUpdatePoint, PointID: p.ID, Err: err}
	}

	m.mtx.Lock()
	index := m.indexOf(p.ID)
	if index == -1 {
		m.mtx.Unlock()
		return &ActionRejectedError{Action: ActionUpdatePoint, PointID: p.ID, Err: fmt.Errorf("point not in collection")}
	}
	m.points[index] = updated.Clone()
	m.mtx.Unlock()

	m.notify(t, updated)
	return nil
}

// AddPoint asks the provider to create the point and, once confirmed, adds the
// provider's version (carrying its new ID) to the collection.
func (m *PointsModel) AddPoint(ctx context.Context, t UpdateType, p Point) error {
	added, err := m.provider.AddPoint(ctx, p)
	if err != nil {
		return &ActionRejectedError{Action: ActionAddPoint, PointID: p.ID, Err: err}
	}

	m.mtx.Lock()
	m.points = append([]Point{added.Clone()}, m.points...)
	m.mtx.Unlock()

	m.notify(t, added)
	return nil
}

// DeletePoint asks the provider to delete the point and, once confirmed,
// removes it from the collection.
func (m *PointsModel) DeletePoint(ctx context.Context, t UpdateType, p Point) error {
	err := m.provider.DeletePoint(ctx, p.ID)
	if err != nil {
		return &ActionRejectedError{Action: ActionDeletePoint, PointID: p.ID, Err: err}
	}

	m.mtx.Lock()
	index := m.indexOf(p.ID)
	if index == -1 {
		m.mtx.Unlock()
		return &ActionRejectedError{Action: ActionDeletePoint, PointID: p.ID, Err: fmt.Errorf("point not in collection")}
	}
	m.points = append(m.points[:index], m.points[index+1:]...)
	m.mtx.Unlock()

	m.notify(t, p)
	return nil
}

func (m *PointsModel) indexOf(id PointID) int {
	for i := range m.points {
		if m.points[i].ID == id {
			return i
		}
	}
	return -1
}
