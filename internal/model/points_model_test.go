package model_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ja-he/tripplan/internal/model"
)

var baseDate = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

type fakeProvider struct {
	points []model.Point
	fail   error
}

func (f *fakeProvider) GetPoints(context.Context) ([]model.Point, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.points, nil
}
func (f *fakeProvider) GetDestinations(context.Context) ([]model.Destination, error) {
	return []model.Destination{{ID: "ams", Name: "Amsterdam"}}, nil
}
func (f *fakeProvider) GetOffers(context.Context) ([]model.OfferGroup, error) {
	return []model.OfferGroup{{Type: model.PointTypeTaxi, Offers: []model.Offer{{ID: "o1", Title: "Upgrade", Price: 20}}}}, nil
}
func (f *fakeProvider) UpdatePoint(_ context.Context, p model.Point) (model.Point, error) {
	if f.fail != nil {
		return model.Point{}, f.fail
	}
	return p, nil
}
func (f *fakeProvider) AddPoint(_ context.Context, p model.Point) (model.Point, error) {
	if f.fail != nil {
		return model.Point{}, f.fail
	}
	p.ID = "new"
	return p, nil
}
func (f *fakeProvider) DeletePoint(context.Context, model.PointID) error {
	return f.fail
}

func taxi(id model.PointID, price int) model.Point {
	return model.Point{
		ID:          id,
		Type:        model.PointTypeTaxi,
		Start:       baseDate.Add(9 * time.Hour),
		End:         baseDate.Add(10 * time.Hour),
		Destination: "ams",
		BasePrice:   price,
		Offers:      []model.OfferID{},
	}
}

func TestPointsModelInit(t *testing.T) {
	t.Run("loads and notifies INIT", func(t *testing.T) {
		m := model.NewPointsModel(&fakeProvider{points: []model.Point{taxi("a", 10)}})
		var got []model.UpdateType
		m.AddObserver(func(ut model.UpdateType, _ model.Point) { got = append(got, ut) })

		m.Init(context.Background())

		if len(got) != 1 || got[0] != model.UpdateInit {
			t.Fatalf("expected a single INIT notification, got %v", got)
		}
		if len(m.Points()) != 1 {
			t.Error("expected one point, got", len(m.Points()))
		}
		if m.LoadError() != nil {
			t.Error("unexpected load error:", m.LoadError())
		}
	})

	t.Run("failed load still notifies INIT", func(t *testing.T) {
		m := model.NewPointsModel(&fakeProvider{fail: errors.New("offline")})
		notified := false
		m.AddObserver(func(ut model.UpdateType, _ model.Point) { notified = ut == model.UpdateInit })

		m.Init(context.Background())

		if !notified {
			t.Error("expected INIT notification")
		}
		if m.LoadError() == nil {
			t.Error("expected load error")
		}
		if len(m.Points()) != 0 {
			t.Error("expected empty collection")
		}
	})
}

func TestPointsModelActions(t *testing.T) {
	t.Run("rejected update leaves collection unchanged", func(t *testing.T) {
		provider := &fakeProvider{points: []model.Point{taxi("a", 10)}}
		m := model.NewPointsModel(provider)
		m.Init(context.Background())
		notifications := 0
		m.AddObserver(func(model.UpdateType, model.Point) { notifications++ })

		provider.fail = errors.New("500")
		changed := taxi("a", 99)
		err := m.UpdatePoint(context.Background(), model.UpdateMinor, changed)

		if !errors.Is(err, model.ErrActionRejected) {
			t.Fatalf("expected rejection, got %v", err)
		}
		if m.Points()[0].BasePrice != 10 {
			t.Error("collection was modified despite rejection")
		}
		if notifications != 0 {
			t.Error("observers notified despite rejection")
		}
	})

	t.Run("update commits and notifies with update type", func(t *testing.T) {
		m := model.NewPointsModel(&fakeProvider{points: []model.Point{taxi("a", 10)}})
		m.Init(context.Background())
		var got model.UpdateType
		m.AddObserver(func(ut model.UpdateType, _ model.Point) { got = ut })

		if err := m.UpdatePoint(context.Background(), model.UpdatePatch, taxi("a", 42)); err != nil {
			t.Fatal(err)
		}
		if got != model.UpdatePatch {
			t.Error("expected PATCH, got", got)
		}
		if m.Points()[0].BasePrice != 42 {
			t.Error("update not committed")
		}
	})

	t.Run("add uses the provider's id", func(t *testing.T) {
		m := model.NewPointsModel(&fakeProvider{})
		m.Init(context.Background())
		if err := m.AddPoint(context.Background(), model.UpdateMinor, taxi("", 5)); err != nil {
			t.Fatal(err)
		}
		points := m.Points()
		if len(points) != 1 || points[0].ID != "new" {
			t.Errorf("unexpected points after add: %v", points)
		}
	})

	t.Run("delete removes", func(t *testing.T) {
		m := model.NewPointsModel(&fakeProvider{points: []model.Point{taxi("a", 10), taxi("b", 20)}})
		m.Init(context.Background())
		if err := m.DeletePoint(context.Background(), model.UpdateMinor, taxi("a", 10)); err != nil {
			t.Fatal(err)
		}
		points := m.Points()
		if len(points) != 1 || points[0].ID != "b" {
			t.Errorf("unexpected points after delete: %v", points)
		}
	})
}

func TestReferenceCost(t *testing.T) {
	ref := model.Reference{
		Offers: []model.OfferGroup{{Type: model.PointTypeTaxi, Offers: []model.Offer{
			{ID: "o1", Title: "Upgrade", Price: 20},
			{ID: "o2", Title: "Radio", Price: 5},
		}}},
	}
	p := taxi("a", 100)
	p.Offers = []model.OfferID{"o2", "unknown"}

	if ref.Cost(p) != 105 {
		t.Error("expected cost 105, got", ref.Cost(p))
	}
}

func TestPointValidate(t *testing.T) {
	p := taxi("a", 10)
	if err := p.Validate(); err != nil {
		t.Error("valid point rejected:", err)
	}

	backwards := taxi("a", 10)
	backwards.End = backwards.Start.Add(-time.Minute)
	if backwards.Validate() == nil {
		t.Error("point ending before its start accepted")
	}

	negative := taxi("a", -1)
	if negative.Validate() == nil {
		t.Error("negative price accepted")
	}
}
