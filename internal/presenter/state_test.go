package presenter_test

import (
	"errors"
	"testing"

	"github.com/ja-he/tripplan/internal/presenter"
)

func TestItemStateTransitions(t *testing.T) {
	t.Run("failed save from editor returns to editing", func(t *testing.T) {
		s := presenter.ItemState{}
		mustNot(t, s.Edit())
		mustNot(t, s.Save())
		mustNot(t, s.Abort())
		next, err := s.Recover()
		mustNot(t, err)
		if next != presenter.StatusEditing || s.Status() != presenter.StatusEditing {
			t.Error("expected editing, got", next)
		}
	})

	t.Run("failed save from display returns to idle", func(t *testing.T) {
		s := presenter.ItemState{}
		mustNot(t, s.Save())
		mustNot(t, s.Abort())
		next, err := s.Recover()
		mustNot(t, err)
		if next != presenter.StatusIdle {
			t.Error("expected idle, got", next)
		}
	})

	t.Run("failed delete from editor returns to idle", func(t *testing.T) {
		s := presenter.ItemState{}
		mustNot(t, s.Edit())
		mustNot(t, s.Delete())
		mustNot(t, s.Abort())
		next, err := s.Recover()
		mustNot(t, err)
		if next != presenter.StatusIdle {
			t.Error("expected idle, got", next)
		}
	})

	t.Run("successful action settles to idle", func(t *testing.T) {
		s := presenter.ItemState{}
		mustNot(t, s.Edit())
		mustNot(t, s.Save())
		if !s.Busy() {
			t.Error("saving state not busy")
		}
		mustNot(t, s.Settle())
		if s.Status() != presenter.StatusIdle || s.Busy() {
			t.Error("expected idle after settle, got", s.Status())
		}
	})

	t.Run("illegal transitions are refused", func(t *testing.T) {
		s := presenter.ItemState{}
		if err := s.Abort(); !errors.Is(err, presenter.ErrIllegalTransition) {
			t.Error("abort from idle allowed")
		}
		mustNot(t, s.Save())
		if err := s.Edit(); !errors.Is(err, presenter.ErrIllegalTransition) {
			t.Error("edit while saving allowed")
		}
		if err := s.Save(); !errors.Is(err, presenter.ErrIllegalTransition) {
			t.Error("second save allowed")
		}
		if _, err := s.Recover(); !errors.Is(err, presenter.ErrIllegalTransition) {
			t.Error("recover while saving allowed")
		}
	})
}

func mustNot(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
