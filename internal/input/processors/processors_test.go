package processors_test

import (
	"testing"

	"github.com/ja-he/tripplan/internal/input"
	"github.com/ja-he/tripplan/internal/input/processors"
)

func TestModalInputProcessor(t *testing.T) {
	x := input.Rune('x')
	y := input.Rune('y')

	t.Run("CapturesInput", func(t *testing.T) {
		base := dummySIP{captures: false}
		m := processors.NewModalInputProcessor(&base)
		if m.CapturesInput() {
			t.Error("claims to capture input, initially")
		}
		base.captures = true
		if !m.CapturesInput() {
			t.Error("does not capture input, despite its base doing so")
		}
		m.Push("editor", &dummySIP{captures: false})
		if m.CapturesInput() {
			t.Error("captures input, despite its overlay not doing so")
		}
	})

	t.Run("ProcessInput goes to the topmost processor", func(t *testing.T) {
		base := dummySIP{inputs: map[input.Key]bool{x: true}}
		editor := dummySIP{inputs: map[input.Key]bool{y: true}}
		m := processors.NewModalInputProcessor(&base)
		if !m.ProcessInput(x) || m.ProcessInput(y) {
			t.Error("base mappings not applied")
		}
		m.Push("editor", &editor)
		if m.ProcessInput(x) || !m.ProcessInput(y) {
			t.Error("overlay mappings not applied")
		}
		if base.processed != 2 || editor.processed != 2 {
			t.Errorf("unexpected processing counts %d, %d", base.processed, editor.processed)
		}
	})

	t.Run("modes", func(t *testing.T) {
		m := processors.NewModalInputProcessor(&dummySIP{help: input.Help{"j": "select-next"}})
		if m.Mode() != "" {
			t.Errorf("unexpected initial mode '%s'", m.Mode())
		}
		m.Push("editor", &dummySIP{help: input.Help{"s": "save"}})
		m.Push("confirm", &dummySIP{})
		if m.Mode() != "confirm" || !m.Active("editor") {
			t.Errorf("unexpected mode '%s'", m.Mode())
		}

		if m.Pop("search") {
			t.Error("popped an overlay that was never pushed")
		}
		if !m.Pop("editor") {
			t.Error("could not pop editor")
		}
		if m.Mode() != "" || m.Active("confirm") {
			t.Error("expected popping editor to remove everything above it")
		}
		if m.GetHelp()["j"] != "select-next" {
			t.Error("expected the base help after popping")
		}
	})

	t.Run("Pending", func(t *testing.T) {
		m := processors.NewModalInputProcessor(&dummySIP{pending: "g"})
		if m.Pending() != "g" {
			t.Errorf("unexpected pending '%s'", m.Pending())
		}
		m.Push("editor", &dummySIP{})
		if m.Pending() != "" {
			t.Errorf("unexpected pending '%s'", m.Pending())
		}
	})

	t.Run("with trees", func(t *testing.T) {
		selected := 0
		list, err := input.ConstructBoundTree(map[string]string{"gg": "select-first"}, input.Bindings{"select-first": func() { selected++ }})
		if err != nil {
			t.Fatal(err)
		}
		m := processors.NewModalInputProcessor(list)
		m.ProcessInput(input.Rune('g'))
		if m.Pending() != "g" || !m.CapturesInput() {
			t.Error("expected a pending sequence")
		}
		m.ProcessInput(input.Rune('g'))
		if selected != 1 || m.Pending() != "" {
			t.Errorf("expected the sequence to complete (selected %d, pending '%s')", selected, m.Pending())
		}
	})
}

type dummySIP struct {
	captures  bool
	inputs    map[input.Key]bool
	processed int
	pending   string
	help      input.Help
}

func (d *dummySIP) CapturesInput() bool { return d.captures }
func (d *dummySIP) ProcessInput(k input.Key) bool {
	d.processed++
	return d.inputs[k]
}
func (d *dummySIP) Pending() string { return d.pending }
func (d *dummySIP) GetHelp() input.Help { return d.help }
