package model

// SortType names a comparator for the point list.
type SortType string

const (
	SortDay    SortType = "day"
	SortEvent  SortType = "event"
	SortTime   SortType = "time"
	SortPrice  SortType = "price"
	SortOffers SortType = "offers"
)

// SortTypes lists the sort types in the order the sort control shows them.
var SortTypes = []SortType{SortDay, SortEvent, SortTime, SortPrice, SortOffers}

// FilterType names a predicate for the point list.
type FilterType string

const (
	FilterEverything FilterType = "everything"
	FilterFuture     FilterType = "future"
	FilterPresent    FilterType = "present"
	FilterPast       FilterType = "past"
)

// FilterTypes lists the filter types in the order the filter control shows
// them.
var FilterTypes = []FilterType{FilterEverything, FilterFuture, FilterPresent, FilterPast}
