package model

// UpdateType is the scope hint a notification carries about how much of the
// rendered list a change affects.
type UpdateType int

const (
	_ UpdateType = iota
	// UpdatePatch means a single point changed.
	UpdatePatch
	// UpdateMinor means the collection changed within the current sort and
	// filter semantics (e.g. after a create or delete).
	UpdateMinor
	// UpdateMajor means the filter criteria changed.
	UpdateMajor
	// UpdateInit means the initial load completed.
	UpdateInit
)

func (t UpdateType) String() string {
	switch t {
	case UpdatePatch:
		return "PATCH"
	case UpdateMinor:
		return "MINOR"
	case UpdateMajor:
		return "MAJOR"
	case UpdateInit:
		return "INIT"
	}
	return "[UNKNOWN]"
}

// UserAction is the kind of intent a user issues on a point.
type UserAction int

const (
	_ UserAction = iota
	ActionUpdatePoint
	ActionAddPoint
	ActionDeletePoint
)

func (a UserAction) String() string {
	switch a {
	case ActionUpdatePoint:
		return "update-point"
	case ActionAddPoint:
		return "add-point"
	case ActionDeletePoint:
		return "delete-point"
	}
	return "[UNKNOWN]"
}
