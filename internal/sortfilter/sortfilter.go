// Package sortfilter derives ordered and filtered views of a point collection.
//
// All functions return new slices and leave their input untouched.
package sortfilter

import (
	"fmt"
	"sort"
	"time"

	"github.com/ja-he/tripplan/internal/model"
)

// ConfigurationError is returned for sort or filter names that are not known.
type ConfigurationError struct {
	Kind string
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s type '%s'", e.Kind, e.Name)
}

type less func(a, b *model.Point) bool

var comparators = map[model.SortType]less{
	model.SortDay: func(a, b *model.Point) bool {
		return a.Start.Before(b.Start)
	},
	model.SortTime: func(a, b *model.Point) bool {
		return a.Duration() > b.Duration()
	},
	model.SortPrice: func(a, b *model.Point) bool {
		return a.BasePrice > b.BasePrice
	},
	model.SortEvent: func(a, b *model.Point) bool {
		return a.Type < b.Type
	},
	model.SortOffers: func(a, b *model.Point) bool {
		return len(a.Offers) > len(b.Offers)
	},
}

type predicate func(p *model.Point, now time.Time) bool

var predicates = map[model.FilterType]predicate{
	model.FilterEverything: func(*model.Point, time.Time) bool { return true },
	model.FilterFuture: func(p *model.Point, now time.Time) bool {
		return p.Start.After(now)
	},
	model.FilterPresent: func(p *model.Point, now time.Time) bool {
		return !p.Start.After(now) && !p.End.Before(now)
	},
	model.FilterPast: func(p *model.Point, now time.Time) bool {
		return p.End.Before(now)
	},
}

// Sort returns the points ordered by the given sort type.
// Points the comparator considers equal keep their input order.
func Sort(t model.SortType, points []model.Point) ([]model.Point, error) {
	cmp, ok := comparators[t]
	if !ok {
		return nil, &ConfigurationError{Kind: "sort", Name: string(t)}
	}

	result := make([]model.Point, len(points))
	copy(result, points)
	sort.SliceStable(result, func(i, j int) bool { return cmp(&result[i], &result[j]) })
	return result, nil
}

// Filter returns the points the given filter type selects, relative to now,
// keeping their order.
func Filter(t model.FilterType, points []model.Point, now time.Time) ([]model.Point, error) {
	keep, ok := predicates[t]
	if !ok {
		return nil, &ConfigurationError{Kind: "filter", Name: string(t)}
	}

	result := make([]model.Point, 0, len(points))
	for i := range points {
		if keep(&points[i], now) {
			result = append(result, points[i])
		}
	}
	return result, nil
}

// View sorts and then filters the points.
func View(st model.SortType, ft model.FilterType, points []model.Point, now time.Time) ([]model.Point, error) {
	sorted, err := Sort(st, points)
	if err != nil {
		return nil, err
	}
	return Filter(ft, sorted, now)
}

// FilterInfo describes one filter control: its type and whether it would
// select any point.
type FilterInfo struct {
	Type      model.FilterType
	HasPoints bool
}

// GenerateFilters returns the FilterInfo for every filter type, in the order of
// model.FilterTypes.
func GenerateFilters(points []model.Point, now time.Time) []FilterInfo {
	result := make([]FilterInfo, 0, len(model.FilterTypes))
	for _, ft := range model.FilterTypes {
		keep := predicates[ft]
		has := false
		for i := range points {
			if keep(&points[i], now) {
				has = true
				break
			}
		}
		result = append(result, FilterInfo{Type: ft, HasPoints: has})
	}
	return result
}

// ValidSort returns whether a comparator exists for the sort type.
func ValidSort(t model.SortType) bool {
	_, ok := comparators[t]
	return ok
}

// ValidFilter returns whether a predicate exists for the filter type.
func ValidFilter(t model.FilterType) bool {
	_, ok := predicates[t]
	return ok
}
