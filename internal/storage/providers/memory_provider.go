package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/storage"
)

// MemoryProvider keeps points in memory only.
type MemoryProvider struct {
	mtx    sync.RWMutex
	points []model.Point
	ref    storage.ReferenceData
}

// NewMemoryProvider returns a provider holding copies of the given points.
func NewMemoryProvider(points []model.Point, ref storage.ReferenceData) *MemoryProvider {
	p := &MemoryProvider{ref: ref, points: make([]model.Point, 0, len(points))}
	for i := range points {
		p.points = append(p.points, points[i].Clone())
	}
	return p
}

// GetPoints returns all points.
func (p *MemoryProvider) GetPoints(ctx context.Context) ([]model.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	result := make([]model.Point, len(p.points))
	for i := range p.points {
		result[i] = p.points[i].Clone()
	}
	return result, nil
}

// GetDestinations returns all destinations.
func (p *MemoryProvider) GetDestinations(ctx context.Context) ([]model.Destination, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.Destination{}, p.ref.Destinations...), nil
}

// GetOffers returns all offer groups.
func (p *MemoryProvider) GetOffers(ctx context.Context) ([]model.OfferGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.OfferGroup{}, p.ref.Offers...), nil
}

// UpdatePoint replaces the point with the same ID.
func (p *MemoryProvider) UpdatePoint(ctx context.Context, point model.Point) (model.Point, error) {
	if err := ctx.Err(); err != nil {
		return model.Point{}, err
	}
	if err := point.Validate(); err != nil {
		return model.Point{}, fmt.Errorf("invalid point (%w)", err)
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()
	for i := range p.points {
		if p.points[i].ID == point.ID {
			p.points[i] = point.Clone()
			return point.Clone(), nil
		}
	}
	return model.Point{}, fmt.Errorf("cannot update '%s' (%w)", point.ID, storage.ErrNotFound)
}

// AddPoint stores the point under a new ID.
func (p *MemoryProvider) AddPoint(ctx context.Context, point model.Point) (model.Point, error) {
	if err := ctx.Err(); err != nil {
		return model.Point{}, err
	}
	if err := point.Validate(); err != nil {
		return model.Point{}, fmt.Errorf("invalid point (%w)", err)
	}

	added := point.Clone()
	added.ID = model.PointID(uuid.NewString())

	p.mtx.Lock()
	p.points = append(p.points, added)
	p.mtx.Unlock()

	return added.Clone(), nil
}

// DeletePoint removes the point.
func (p *MemoryProvider) DeletePoint(ctx context.Context, id model.PointID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()
	for i := range p.points {
		if p.points[i].ID == id {
			p.points = append(p.points[:i], p.points[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cannot delete '%s' (%w)", id, storage.ErrNotFound)
}

// Close does nothing.
func (p *MemoryProvider) Close() error { return nil }
