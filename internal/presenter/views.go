package presenter

import (
	"github.com/ja-he/tripplan/internal/model"
)

// PointHandlers are the intents a point's views emit.
type PointHandlers struct {
	OnEditClick     func()
	OnFavoriteClick func()
	OnFormSubmit    func(model.Point)
	OnDeleteClick   func(model.Point)
	OnCancel        func()
}

// EditorState is how an editor view should present itself.
type EditorState struct {
	IsNew      bool
	IsDisabled bool
	IsSaving   bool
	IsDeleting bool
}

// PointViews is the display/edit view pair of a single point.
//
// Only one of the two is visible at a time; showing one hides the other.
type PointViews interface {
	ShowPoint(p model.Point)
	ShowEditor(p model.Point, state EditorState)
	// Shake flashes an error indication on the visible view and calls done
	// (on the UI loop) when the flash is over.
	Shake(done func())
	Remove()
}

// ViewFactory creates view pairs inside the list container, in creation
// order.
type ViewFactory interface {
	NewPointViews(ref model.Reference, handlers PointHandlers) PointViews
}

// DataChangeFunc dispatches a user action.
type DataChangeFunc func(model.UserAction, model.UpdateType, model.Point)

// EditArbiter hands out the single active-edit token of a list.
//
// Acquire makes every other editable item leave its editor before the
// requester enters its own.
type EditArbiter interface {
	Acquire(id model.PointID)
	Release(id model.PointID)
}
