package processors

import (
	"github.com/ja-he/tripplan/internal/input"
)

// ModalInputProcessor processes input with a base processor that named
// overlays can be stacked on, e.g. the editor bindings over the list bindings.
// Only the topmost processor gets to see the input.
// Implements input.SimpleInputProcessor.
type ModalInputProcessor struct {
	base     input.SimpleInputProcessor
	overlays []overlay
}

type overlay struct {
	mode      string
	processor input.SimpleInputProcessor
}

// NewModalInputProcessor returns a processor with the given base and no
// overlays.
func NewModalInputProcessor(base input.SimpleInputProcessor) *ModalInputProcessor {
	return &ModalInputProcessor{base: base}
}

func (p *ModalInputProcessor) top() input.SimpleInputProcessor {
	if len(p.overlays) == 0 {
		return p.base
	}
	return p.overlays[len(p.overlays)-1].processor
}

// CapturesInput returns whether the topmost processor captures input.
func (p *ModalInputProcessor) CapturesInput() bool { return p.top().CapturesInput() }

// ProcessInput hands the key to the topmost processor.
func (p *ModalInputProcessor) ProcessInput(key input.Key) bool {
	return p.top().ProcessInput(key)
}

// Pending returns the partial sequence of the topmost processor.
func (p *ModalInputProcessor) Pending() string { return p.top().Pending() }

// GetHelp returns the mappings of the topmost processor.
func (p *ModalInputProcessor) GetHelp() input.Help { return p.top().GetHelp() }

// Mode returns the name of the topmost overlay or "" without overlays.
func (p *ModalInputProcessor) Mode() string {
	if len(p.overlays) == 0 {
		return ""
	}
	return p.overlays[len(p.overlays)-1].mode
}

// Push puts a named overlay on top.
func (p *ModalInputProcessor) Push(mode string, processor input.SimpleInputProcessor) {
	p.overlays = append(p.overlays, overlay{mode: mode, processor: processor})
}

// Pop removes the topmost overlay with the given name and everything above
// it. It returns false if there is no such overlay.
func (p *ModalInputProcessor) Pop(mode string) bool {
	for i := len(p.overlays) - 1; i >= 0; i-- {
		if p.overlays[i].mode == mode {
			p.overlays = p.overlays[:i]
			return true
		}
	}
	return false
}

// Active returns whether an overlay with the given name is on the stack.
func (p *ModalInputProcessor) Active(mode string) bool {
	for _, o := range p.overlays {
		if o.mode == mode {
			return true
		}
	}
	return false
}
