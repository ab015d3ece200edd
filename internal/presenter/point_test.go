package presenter_test

import (
	"testing"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
)

func setupPoint() (*presenter.PointPresenter, *fakeFactory, *recorder, *fakeArbiter) {
	factory := &fakeFactory{}
	rec := &recorder{}
	arbiter := &fakeArbiter{}
	p := presenter.NewPointPresenter(factory, model.Reference{}, rec.dispatch, arbiter)
	p.Init(samplePoint("x"))
	return p, factory, rec, arbiter
}

func TestPointPresenterInit(t *testing.T) {
	p, factory, _, _ := setupPoint()
	if len(factory.created) != 1 || factory.last().showing != "point" {
		t.Fatal("expected a single display view")
	}

	t.Run("same id keeps views", func(t *testing.T) {
		updated := samplePoint("x")
		updated.BasePrice = 70
		p.Init(updated)
		if len(factory.created) != 1 {
			t.Error("views were rebuilt for the same point")
		}
		if factory.last().point.BasePrice != 70 {
			t.Error("view not refreshed")
		}
	})

	t.Run("open editor survives refresh of same point", func(t *testing.T) {
		factory.last().handlers.OnEditClick()
		p.Init(samplePoint("x"))
		if p.Status() != presenter.StatusEditing || factory.last().showing != "editor" {
			t.Error("editor closed by refresh")
		}
	})

	t.Run("different id replaces views", func(t *testing.T) {
		old := factory.last()
		p.Init(samplePoint("y"))
		if !old.removed || len(factory.created) != 2 {
			t.Error("views not replaced")
		}
		if p.Status() != presenter.StatusIdle {
			t.Error("expected idle, got", p.Status())
		}
	})
}

func TestPointPresenterEditing(t *testing.T) {
	p, factory, rec, arbiter := setupPoint()
	views := factory.last()

	views.handlers.OnEditClick()
	if p.Status() != presenter.StatusEditing || arbiter.holder != "x" {
		t.Fatal("edit did not acquire token")
	}

	t.Run("patch for non sort-relevant change", func(t *testing.T) {
		update := samplePoint("x")
		update.Destination = "ams"
		update.IsFavorite = true
		views.handlers.OnFormSubmit(update)
		if len(rec.calls) != 1 || rec.calls[0].updateType != model.UpdatePatch {
			t.Fatalf("unexpected dispatch %v", rec.calls)
		}
	})

	for i, change := range []struct {
		name   string
		modify func(*model.Point)
	}{
		{"price", func(p *model.Point) { p.BasePrice = 1 }},
		{"type", func(p *model.Point) { p.Type = model.PointTypeBus }},
		{"offers", func(p *model.Point) { p.Offers = []model.OfferID{"o1"} }},
	} {
		t.Run("minor for "+change.name+" change", func(t *testing.T) {
			update := samplePoint("x")
			change.modify(&update)
			views.handlers.OnFormSubmit(update)
			call := rec.calls[i+1]
			if call.updateType != model.UpdateMinor || call.action != model.ActionUpdatePoint {
				t.Fatalf("unexpected dispatch %v", call)
			}
		})
	}

	t.Run("saving disables editor, success closes it", func(t *testing.T) {
		p.SetSaving()
		if !views.editor.IsDisabled || !views.editor.IsSaving {
			t.Fatal("editor not disabled")
		}
		views.handlers.OnFormSubmit(samplePoint("x"))
		if len(rec.calls) != 4 {
			t.Fatal("input accepted while saving")
		}
		p.Init(samplePoint("x"))
		if p.Status() != presenter.StatusIdle || views.showing != "point" {
			t.Error("successful save did not return to display")
		}
		if arbiter.holder != "" {
			t.Error("token not released")
		}
	})
}

func TestPointPresenterAborting(t *testing.T) {
	t.Run("rejected update reverts to editor", func(t *testing.T) {
		p, factory, _, _ := setupPoint()
		views := factory.last()
		views.handlers.OnEditClick()
		p.SetSaving()
		p.SetAborting()
		if views.shakes != 1 {
			t.Error("no error flash")
		}
		if p.Status() != presenter.StatusEditing || views.showing != "editor" || views.editor.IsDisabled {
			t.Error("expected enabled editor, got", p.Status(), views.showing)
		}
		if views.point.BasePrice != 60 {
			t.Error("point data changed")
		}
	})

	t.Run("rejected delete reverts to display", func(t *testing.T) {
		p, factory, _, arbiter := setupPoint()
		views := factory.last()
		views.handlers.OnEditClick()
		p.SetDeleting()
		p.SetAborting()
		if p.Status() != presenter.StatusIdle || views.showing != "point" {
			t.Error("expected display view, got", p.Status(), views.showing)
		}
		if arbiter.holder != "" {
			t.Error("token not released")
		}
	})

	t.Run("status is aborting while flashing", func(t *testing.T) {
		factory := &fakeFactory{hold: true}
		p := presenter.NewPointPresenter(factory, model.Reference{}, (&recorder{}).dispatch, nil)
		p.Init(samplePoint("x"))
		p.SetSaving()
		p.SetAborting()
		if p.Status() != presenter.StatusAborting {
			t.Fatal("expected aborting, got", p.Status())
		}
		factory.last().pendingShake()
		if p.Status() != presenter.StatusIdle {
			t.Error("expected idle after flash, got", p.Status())
		}
	})
}

func TestPointPresenterResetAndDestroy(t *testing.T) {
	p, factory, _, arbiter := setupPoint()
	views := factory.last()
	views.handlers.OnEditClick()

	p.ResetView()
	if p.Status() != presenter.StatusIdle || views.showing != "point" {
		t.Error("reset did not close editor")
	}

	views.handlers.OnEditClick()
	p.Destroy()
	if !views.removed || arbiter.holder != "" {
		t.Error("destroy did not remove views and release token")
	}
	p.Destroy()
}

func TestPointPresenterFavorite(t *testing.T) {
	_, factory, rec, _ := setupPoint()
	factory.last().handlers.OnFavoriteClick()
	if len(rec.calls) != 1 || !rec.calls[0].point.IsFavorite || rec.calls[0].updateType != model.UpdatePatch {
		t.Errorf("unexpected dispatch %v", rec.calls)
	}
}
