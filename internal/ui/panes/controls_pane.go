package panes

import (
	"strings"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/sortfilter"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// ControlsPane shows the sort and filter controls in one bar.
// Implements control.SortView and presenter.FilterView.
type ControlsPane struct {
	ui.LeafPane

	sort    model.SortType
	filter  model.FilterType
	filters []sortfilter.FilterInfo

	onFilterSelect func(model.FilterType)
}

// ShowSort marks the given sort type as active.
func (p *ControlsPane) ShowSort(current model.SortType) { p.sort = current }

// ShowFilters shows the filter controls, the given one active.
func (p *ControlsPane) ShowFilters(current model.FilterType, filters []sortfilter.FilterInfo) {
	p.filter = current
	p.filters = filters
}

// SetFilterHandler sets the function a filter selection is reported to.
func (p *ControlsPane) SetFilterHandler(f func(model.FilterType)) { p.onFilterSelect = f }

// CurrentSort returns the sort type shown as active.
func (p *ControlsPane) CurrentSort() model.SortType { return p.sort }

// CurrentFilter returns the filter type shown as active.
func (p *ControlsPane) CurrentFilter() model.FilterType { return p.filter }

// NextFilter selects the next enabled filter after the active one.
// Disabled filters are skipped; if none other is enabled, nothing happens.
func (p *ControlsPane) NextFilter() {
	if len(p.filters) == 0 || p.onFilterSelect == nil {
		return
	}
	current := 0
	for i, f := range p.filters {
		if f.Type == p.filter {
			current = i
			break
		}
	}
	for step := 1; step < len(p.filters); step++ {
		candidate := p.filters[(current+step)%len(p.filters)]
		if candidate.HasPoints {
			p.onFilterSelect(candidate.Type)
			return
		}
	}
}

// Draw draws this pane.
func (p *ControlsPane) Draw() {
	x, y, w, h := p.Dimensions()
	ss := p.Stylesheet
	p.Renderer.DrawBox(x, y, w, h, ss.Control)

	col := x + 1
	p.Renderer.DrawText(col, y, 6, 1, ss.Control.Italicized(), "sort:")
	col += 6
	for i, st := range model.SortTypes {
		style := ss.Control
		if st == p.sort {
			style = ss.ControlActive
		}
		label := " " + strings.ToUpper(string(st)) + " "
		p.Renderer.DrawText(col, y, len(label), 1, style, label)
		col += len(label)
		if i < len(model.SortTypes)-1 {
			col++
		}
	}

	labels := make([]string, len(p.filters))
	width := 8
	for i, f := range p.filters {
		labels[i] = " " + strings.ToUpper(string(f.Type)) + " "
		width += len(labels[i]) + 1
	}
	col = x + w - width
	p.Renderer.DrawText(col, y, 8, 1, ss.Control.Italicized(), "filter:")
	col += 8
	for i, f := range p.filters {
		style := ss.Control
		switch {
		case f.Type == p.filter:
			style = ss.ControlActive
		case !f.HasPoints:
			style = ss.ControlDisabled
		}
		p.Renderer.DrawText(col, y, len(labels[i]), 1, style, labels[i])
		col += len(labels[i]) + 1
	}
}

// NewControlsPane constructs and returns a new ControlsPane.
func NewControlsPane(renderer ui.ConstrainedRenderer, dimensions func() (x, y, w, h int), stylesheet *styling.Stylesheet) *ControlsPane {
	return &ControlsPane{
		LeafPane: ui.NewLeafPane(renderer, dimensions, stylesheet),
		sort:     model.SortDay,
		filter:   model.FilterEverything,
	}
}
