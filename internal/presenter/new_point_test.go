package presenter_test

import (
	"testing"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
)

func TestCreationPresenter(t *testing.T) {
	ref := model.Reference{Destinations: []model.Destination{{ID: "gva", Name: "Geneva"}}}

	t.Run("init opens a single editor", func(t *testing.T) {
		factory := &fakeFactory{}
		p := presenter.NewCreationPresenter(factory, (&recorder{}).dispatch, nil)
		p.Init(ref, baseDate)
		p.Init(ref, baseDate)
		if len(factory.created) != 1 || !factory.last().editor.IsNew {
			t.Fatal("expected exactly one new point editor")
		}
		if factory.last().point.Destination != "gva" {
			t.Error("blank point has no default destination")
		}
	})

	t.Run("submit dispatches add", func(t *testing.T) {
		factory := &fakeFactory{}
		rec := &recorder{}
		p := presenter.NewCreationPresenter(factory, rec.dispatch, nil)
		p.Init(ref, baseDate)
		draft := factory.last().point
		draft.BasePrice = 30
		factory.last().handlers.OnFormSubmit(draft)
		if len(rec.calls) != 1 || rec.calls[0].action != model.ActionAddPoint || rec.calls[0].updateType != model.UpdateMinor {
			t.Fatalf("unexpected dispatch %v", rec.calls)
		}
	})

	t.Run("aborting re-enables the editor", func(t *testing.T) {
		factory := &fakeFactory{}
		p := presenter.NewCreationPresenter(factory, (&recorder{}).dispatch, nil)
		p.Init(ref, baseDate)
		p.SetSaving()
		if !factory.last().editor.IsDisabled {
			t.Fatal("editor not disabled while saving")
		}
		p.SetAborting()
		if p.Status() != presenter.StatusEditing || factory.last().editor.IsDisabled {
			t.Error("editor not re-enabled")
		}
	})

	t.Run("cancel destroys without model effect", func(t *testing.T) {
		factory := &fakeFactory{}
		rec := &recorder{}
		destroyed := 0
		p := presenter.NewCreationPresenter(factory, rec.dispatch, func() { destroyed++ })
		p.Init(ref, baseDate)
		factory.last().handlers.OnCancel()
		if p.Active() || !factory.last().removed || destroyed != 1 || len(rec.calls) != 0 {
			t.Error("cancel did not tear down cleanly")
		}
		p.Destroy()
		if destroyed != 1 {
			t.Error("destroy of inactive flow called onDestroy")
		}
	})
}
