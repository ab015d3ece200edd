package panes

import (
	"fmt"

	"github.com/ja-he/tripplan/internal/potatolog"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// StatusPane is a status bar that displays the editing mode, a partially typed
// key sequence, the point count and the most recent warning or error from the
// log.
type StatusPane struct {
	ui.LeafPane

	logReader potatolog.LogReader

	mode       func() string
	pending    func() string
	pointCount func() int
}

// Draw draws this pane.
func (p *StatusPane) Draw() {
	x, y, w, h := p.Dimensions()
	bgStyle := p.Stylesheet.Status
	p.Renderer.DrawBox(x, y, w, h, bgStyle)

	modeStr := fmt.Sprintf("-- %s --", p.mode())
	p.Renderer.DrawText(x+1, y, len(modeStr), 1, bgStyle.DefaultEmphasized().Bolded(), modeStr)
	col := x + 1 + len(modeStr) + 2

	if pending := p.pending(); pending != "" {
		p.Renderer.DrawText(col, y, len(pending), 1, bgStyle.Bolded(), pending)
		col += len(pending) + 2
	}

	countStr := fmt.Sprintf("%d points", p.pointCount())
	p.Renderer.DrawText(col, y, len(countStr), 1, bgStyle.Italicized(), countStr)
	col += len(countStr) + 2

	if entry, ok := p.logReader.Latest("warn", "error"); ok {
		style := p.Stylesheet.StatusWarn
		if entry["level"] == "error" {
			style = p.Stylesheet.StatusError
		}
		msg := fmt.Sprintf("%v", entry["message"])
		if errStr, ok := entry["error"]; ok {
			msg = fmt.Sprintf("%s: %v", msg, errStr)
		}
		p.Renderer.DrawText(col, y, x+w-col, 1, style, fitLeft(msg, x+w-col))
	}
}

// NewStatusPane constructs and returns a new StatusPane.
func NewStatusPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	logReader potatolog.LogReader,
	mode func() string,
	pending func() string,
	pointCount func() int,
) *StatusPane {
	return &StatusPane{
		LeafPane:   ui.NewLeafPane(renderer, dimensions, stylesheet),
		logReader:  logReader,
		mode:       mode,
		pending:    pending,
		pointCount: pointCount,
	}
}
