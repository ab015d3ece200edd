package input

import (
	"fmt"
	"sort"
)

// Bindings maps action names to the functions they trigger.
type Bindings map[string]func()

// ConstructBoundTree constructs the input tree for the given mapping of key
// sequences to action names, looking each action up in bindings.
//
// An action name without a binding is an error, so that a typo in the config
// does not go unnoticed.
func ConstructBoundTree(mappings map[string]string, bindings Bindings) (*Tree, error) {
	spec := make(map[Keyspec]*Action, len(mappings))

	keys := make([]string, 0, len(mappings))
	for k := range mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := mappings[k]
		f, ok := bindings[name]
		if !ok {
			return nil, fmt.Errorf("unknown action '%s' bound to '%s'", name, k)
		}
		spec[Keyspec(k)] = &Action{Name: name, Do: f}
	}

	return ConstructInputTree(spec)
}
