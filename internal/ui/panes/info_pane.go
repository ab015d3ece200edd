package panes

import (
	"fmt"

	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// InfoPane is the trip summary bar above the list: route title, dates and
// total cost.
// Implements presenter.InfoView.
type InfoPane struct {
	ui.LeafPane

	info  presenter.TripInfo
	shown bool
}

// ShowInfo shows the given summary.
func (p *InfoPane) ShowInfo(info presenter.TripInfo) {
	p.info = info
	p.shown = true
}

// Remove hides the summary.
func (p *InfoPane) Remove() {
	p.info = presenter.TripInfo{}
	p.shown = false
}

// Shown returns whether a summary is shown and which.
func (p *InfoPane) Shown() (presenter.TripInfo, bool) { return p.info, p.shown }

// Draw draws this pane.
func (p *InfoPane) Draw() {
	x, y, w, h := p.Dimensions()
	style := p.Stylesheet.Header
	p.Renderer.DrawBox(x, y, w, h, style)
	if !p.shown {
		return
	}

	cost := fmt.Sprintf("Total: %s", formatPrice(p.info.Cost))
	costW := len([]rune(cost)) + 1
	p.Renderer.DrawText(x+1, y, w-costW-1, 1, style.Bolded(), fitLeft(p.info.Title, w-costW-1))
	p.Renderer.DrawText(x+w-costW, y, costW, 1, style.DefaultEmphasized(), cost)
	if h > 1 {
		p.Renderer.DrawText(x+1, y+1, w-1, 1, style.Italicized(), formatDateRange(p.info.Start, p.info.End))
	}
}

// NewInfoPane constructs and returns a new InfoPane.
func NewInfoPane(renderer ui.ConstrainedRenderer, dimensions func() (x, y, w, h int), stylesheet *styling.Stylesheet) *InfoPane {
	return &InfoPane{LeafPane: ui.NewLeafPane(renderer, dimensions, stylesheet)}
}
