package model

import (
	"errors"
	"fmt"
)

// ErrActionRejected is matched (via errors.Is) by every error returned for a
// user action the data provider refused or failed to perform.
var ErrActionRejected = errors.New("action rejected")

// ActionRejectedError describes a rejected user action.
type ActionRejectedError struct {
	Action  UserAction
	PointID PointID
	Err     error
}

func (e *ActionRejectedError) Error() string {
	return fmt.Sprintf("%s of point '%s' rejected (%s)", e.Action, e.PointID, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *ActionRejectedError) Unwrap() error { return e.Err }

// Is reports ErrActionRejected as matching.
func (e *ActionRejectedError) Is(target error) bool { return target == ErrActionRejected }
