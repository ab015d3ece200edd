package panes

import (
	"sort"
	"strings"

	"github.com/ja-he/tripplan/internal/input"
	"github.com/ja-he/tripplan/internal/styling"
	"github.com/ja-he/tripplan/internal/ui"
)

// HelpPane is a popup listing the key bindings of the current input mode,
// one line per action.
type HelpPane struct {
	ui.LeafPane

	content func() input.Help
}

type helpLine struct {
	keys   string
	action string
}

// helpLines groups the keyspecs of each action, e.g. "j, <down>".
func helpLines(help input.Help) []helpLine {
	byAction := map[string][]string{}
	for keys, action := range help {
		byAction[action] = append(byAction[action], keys)
	}
	lines := make([]helpLine, 0, len(byAction))
	for action, keys := range byAction {
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) < len(keys[j])
			}
			return keys[i] < keys[j]
		})
		lines = append(lines, helpLine{keys: strings.Join(keys, ", "), action: action})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].action < lines[j].action })
	return lines
}

// Draw draws the popup.
func (p *HelpPane) Draw() {
	x, y, w, h := p.Dimensions()
	style := p.Stylesheet.Help
	p.Renderer.DrawBox(x, y, w, h, style)
	p.Renderer.DrawText(x+1, y, w-2, 1, style.Bolded(), fitLeft("keys", w-2))

	const keysW = 16
	for i, line := range helpLines(p.content()) {
		row := y + 1 + i
		if row >= y+h {
			break
		}
		p.Renderer.DrawText(x+1, row, keysW, 1, style.DefaultEmphasized().Bolded(), fitRight(line.keys, keysW))
		p.Renderer.DrawText(x+2+keysW, row, w-keysW-3, 1, style.Italicized(), fitLeft(line.action, w-keysW-3))
	}
}

// NewHelpPane constructs and returns a new HelpPane, shown while condition
// holds.
func NewHelpPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	condition func() bool,
	content func() input.Help,
) *HelpPane {
	p := &HelpPane{
		LeafPane: ui.NewLeafPane(renderer, dimensions, stylesheet),
		content:  content,
	}
	p.Visible = condition
	return p
}
