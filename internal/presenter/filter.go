package presenter

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/sortfilter"
)

// FilterView renders the filter controls.
type FilterView interface {
	ShowFilters(current model.FilterType, filters []sortfilter.FilterInfo)
}

// PointsSnapshot provides the points the filter controls are computed over.
type PointsSnapshot interface {
	Points() []model.Point
}

// FilterPresenter renders the filter controls and turns a selection into a
// MAJOR filter change.
type FilterPresenter struct {
	view    FilterView
	filters *model.FilterModel
	points  PointsSnapshot
	now     func() time.Time
}

// NewFilterPresenter returns a filter presenter.
func NewFilterPresenter(view FilterView, filters *model.FilterModel, points PointsSnapshot, now func() time.Time) *FilterPresenter {
	return &FilterPresenter{view: view, filters: filters, points: points, now: now}
}

// Init renders the controls for the current points and filter.
func (p *FilterPresenter) Init() {
	p.view.ShowFilters(p.filters.Filter(), sortfilter.GenerateFilters(p.points.Points(), p.now()))
}

// HandleFilterChange selects a filter. Re-selecting the current filter and
// selecting a filter without any points do nothing.
func (p *FilterPresenter) HandleFilterChange(f model.FilterType) {
	if f == p.filters.Filter() {
		return
	}
	if !sortfilter.ValidFilter(f) {
		log.Error().Str("filter-type", string(f)).Msg("unknown filter type selected")
		return
	}
	for _, info := range sortfilter.GenerateFilters(p.points.Points(), p.now()) {
		if info.Type == f && !info.HasPoints {
			log.Debug().Str("filter-type", string(f)).Msg("filter has no points, ignoring selection")
			return
		}
	}
	p.filters.SetFilter(model.UpdateMajor, f)
}
