package input

import (
	"fmt"
	"sort"
)

// Action is what a complete key sequence triggers.
type Action struct {
	// Name is shown in the help, e.g. "select-next".
	Name string
	Do   func()
}

// Help maps keyspecs to the names of the actions they trigger.
type Help = map[string]string

type node struct {
	children map[Key]*node
	action   *Action
}

// Tree matches key sequences against a set of mappings, keeping track of a
// partially typed sequence between calls.
//
// Example:
//
//	tree:                       mapping:
//
//	g
//	+-g     -> select-first     "gg" -> select-first
//	d
//	+-d     -> delete           "dd" -> delete
//	j       -> select-next      "j"  -> select-next
type Tree struct {
	root    *node
	current *node
	pending []Key
}

// ConstructInputTree constructs a Tree for the given mappings.
//
// It is an error for one sequence to be a prefix of another, as the shorter
// one would make the longer one unreachable.
func ConstructInputTree(spec map[Keyspec]*Action) (*Tree, error) {
	specs := make([]Keyspec, 0, len(spec))
	for s := range spec {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i] < specs[j] })

	root := &node{children: map[Key]*node{}}
	for _, s := range specs {
		sequence, err := ParseKeyspec(s)
		if err != nil {
			return nil, err
		}

		n := root
		for i, key := range sequence {
			if n.action != nil {
				return nil, fmt.Errorf("'%s' is shadowed by '%s'", s, FormatKeys(sequence[:i]))
			}
			next, ok := n.children[key]
			if !ok {
				next = &node{children: map[Key]*node{}}
				n.children[key] = next
			}
			n = next
		}
		if len(n.children) > 0 {
			return nil, fmt.Errorf("'%s' shadows a longer sequence", s)
		}
		if n.action != nil {
			return nil, fmt.Errorf("'%s' is mapped twice", s)
		}
		n.action = spec[s]
	}

	return &Tree{root: root, current: root}, nil
}

// EmptyTree returns a tree without mappings.
func EmptyTree() *Tree {
	root := &node{children: map[Key]*node{}}
	return &Tree{root: root, current: root}
}

// ProcessInput feeds a key into the tree. It returns whether the key was
// part of a mapping; a key that is not resets any partial sequence.
func (t *Tree) ProcessInput(k Key) bool {
	next, ok := t.current.children[k]
	switch {
	case !ok:
		t.Reset()
		return false
	case next.action != nil:
		t.Reset()
		next.action.Do()
		return true
	default:
		t.current = next
		t.pending = append(t.pending, k)
		return true
	}
}

// CapturesInput returns whether a partial sequence has been typed.
func (t *Tree) CapturesInput() bool {
	return t.current != t.root
}

// Pending returns the partial sequence typed so far in keyspec notation.
func (t *Tree) Pending() string {
	return FormatKeys(t.pending)
}

// Reset drops any partial sequence.
func (t *Tree) Reset() {
	t.current = t.root
	t.pending = nil
}

// GetHelp returns all mappings of the tree.
func (t *Tree) GetHelp() Help {
	result := Help{}
	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		if n.action != nil {
			result[prefix] = n.action.Name
			return
		}
		for k, child := range n.children {
			walk(child, prefix+k.String())
		}
	}
	walk(t.root, "")
	return result
}
