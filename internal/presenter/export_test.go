package presenter

import "github.com/ja-he/tripplan/internal/model"

// SetTripInfoSort replaces the order ComputeTripInfo walks the points in and
// returns a func restoring the previous one.
func SetTripInfoSort(t model.SortType) (restore func()) {
	previous := tripInfoSort
	tripInfoSort = t
	return func() { tripInfoSort = previous }
}
