package storage

import (
	"errors"

	"github.com/ja-he/tripplan/internal/model"
)

// ErrNotFound is returned by backends for operations on unknown points.
var ErrNotFound = errors.New("point not found")

// Backend is a model.DataProvider over some storage system that holds
// resources which need releasing.
//
// The backend's responsibilities are as follows:
//   - persist points and hand out IDs for new ones
//   - provide the reference data (destinations and offers)
//   - validate what it is asked to store
type Backend interface {
	model.DataProvider

	Close() error
}
