package model

// FilterObserver is notified whenever the filter of a FilterModel is set.
type FilterObserver func(UpdateType, FilterType)

// FilterModel holds the currently selected filter.
//
// Unlike the PointsModel it is only ever touched from the UI loop, so it does
// not synchronize.
type FilterModel struct {
	filter    FilterType
	observers []FilterObserver
}

// NewFilterModel returns a model with FilterEverything selected.
func NewFilterModel() *FilterModel {
	return &FilterModel{filter: FilterEverything}
}

// Filter returns the current filter.
func (m *FilterModel) Filter() FilterType { return m.filter }

// SetFilter sets the filter and notifies all observers, even if the filter did
// not change.
func (m *FilterModel) SetFilter(t UpdateType, f FilterType) {
	m.filter = f
	for _, o := range m.observers {
		o(t, f)
	}
}

// AddObserver registers an observer.
func (m *FilterModel) AddObserver(o FilterObserver) {
	m.observers = append(m.observers, o)
}
