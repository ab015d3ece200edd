package presenter

import (
	"errors"
	"fmt"
)

// Status is the UI status of a single point's presenter.
type Status int

const (
	StatusIdle Status = iota
	StatusEditing
	StatusSaving
	StatusDeleting
	StatusAborting
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusEditing:
		return "editing"
	case StatusSaving:
		return "saving"
	case StatusDeleting:
		return "deleting"
	case StatusAborting:
		return "aborting"
	}
	return "[UNKNOWN]"
}

// ErrIllegalTransition is returned when an ItemState is asked for a
// transition its current status does not allow.
var ErrIllegalTransition = errors.New("illegal status transition")

var transitions = map[Status][]Status{
	StatusIdle:     {StatusEditing, StatusSaving, StatusDeleting},
	StatusEditing:  {StatusIdle, StatusSaving, StatusDeleting},
	StatusSaving:   {StatusIdle, StatusAborting},
	StatusDeleting: {StatusIdle, StatusAborting},
	StatusAborting: {StatusIdle, StatusEditing},
}

// ItemState is the finite-state machine of a point presenter.
//
// It remembers where a pending action started from so that a failed action
// can revert: a failed save returns to the status it was issued from, a
// failed delete returns to Idle.
type ItemState struct {
	status Status
	origin Status
	failed Status
}

// Status returns the current status.
func (s *ItemState) Status() Status { return s.status }

// Origin returns the status the pending (or last) action was issued from.
func (s *ItemState) Origin() Status { return s.origin }

// Busy returns whether an action is pending or aborting, i.e. whether the
// presenter must reject further input.
func (s *ItemState) Busy() bool {
	return s.status == StatusSaving || s.status == StatusDeleting || s.status == StatusAborting
}

func (s *ItemState) to(next Status) error {
	for _, allowed := range transitions[s.status] {
		if allowed == next {
			s.status = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, next)
}

// Edit enters Editing from Idle.
func (s *ItemState) Edit() error {
	if s.status != StatusIdle {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, StatusEditing)
	}
	return s.to(StatusEditing)
}

// Reset leaves Editing for Idle. It is a no-op when Idle.
func (s *ItemState) Reset() error {
	if s.status == StatusIdle {
		return nil
	}
	if s.status != StatusEditing {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, StatusIdle)
	}
	return s.to(StatusIdle)
}

// Save marks a pending save.
func (s *ItemState) Save() error {
	origin := s.status
	if err := s.to(StatusSaving); err != nil {
		return err
	}
	s.origin = origin
	return nil
}

// Delete marks a pending delete.
func (s *ItemState) Delete() error {
	origin := s.status
	if err := s.to(StatusDeleting); err != nil {
		return err
	}
	s.origin = origin
	return nil
}

// Settle completes a pending action successfully.
func (s *ItemState) Settle() error {
	if s.status != StatusSaving && s.status != StatusDeleting {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.status, StatusIdle)
	}
	return s.to(StatusIdle)
}

// Abort marks the pending action as failed.
func (s *ItemState) Abort() error {
	failed := s.status
	if err := s.to(StatusAborting); err != nil {
		return err
	}
	s.failed = failed
	return nil
}

// Recover finishes aborting and returns the status reverted to.
func (s *ItemState) Recover() (Status, error) {
	if s.status != StatusAborting {
		return s.status, fmt.Errorf("%w: recover from %s", ErrIllegalTransition, s.status)
	}
	next := StatusIdle
	if s.failed == StatusSaving {
		next = s.origin
	}
	if err := s.to(next); err != nil {
		return s.status, err
	}
	return next, nil
}
