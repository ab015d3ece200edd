package presenter

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
)

// PointPresenter owns the display/edit lifecycle of one point in the list.
type PointPresenter struct {
	factory ViewFactory
	ref     model.Reference
	views   PointViews
	point   model.Point
	state   ItemState

	onDataChange DataChangeFunc
	arbiter      EditArbiter
}

// NewPointPresenter returns a presenter that has not rendered anything yet.
func NewPointPresenter(factory ViewFactory, ref model.Reference, onDataChange DataChangeFunc, arbiter EditArbiter) *PointPresenter {
	return &PointPresenter{
		factory:      factory,
		ref:          ref,
		onDataChange: onDataChange,
		arbiter:      arbiter,
	}
}

// ID returns the ID of the presented point.
func (p *PointPresenter) ID() model.PointID { return p.point.ID }

// Point returns the presented point.
func (p *PointPresenter) Point() model.Point { return p.point }

// Status returns the current status.
func (p *PointPresenter) Status() Status { return p.state.Status() }

// Init (re)builds the views for the point.
//
// For the point already presented, an open editor stays open with the new
// data and a successful save returns to the display view. A different point
// replaces the views entirely.
func (p *PointPresenter) Init(point model.Point) {
	if p.views != nil && point.ID != p.point.ID {
		p.Destroy()
	}

	p.point = point.Clone()

	if p.views == nil {
		p.views = p.factory.NewPointViews(p.ref, p.handlers())
		p.state = ItemState{}
		p.views.ShowPoint(p.point)
		return
	}

	switch p.state.Status() {
	case StatusEditing:
		p.views.ShowEditor(p.point, EditorState{})
	case StatusSaving, StatusDeleting:
		p.logTransition(p.state.Settle())
		p.release()
		p.views.ShowPoint(p.point)
	default:
		p.views.ShowPoint(p.point)
	}
}

// ResetView closes the editor without saving.
func (p *PointPresenter) ResetView() {
	if p.state.Status() != StatusEditing {
		return
	}
	p.logTransition(p.state.Reset())
	if p.views != nil {
		p.views.ShowPoint(p.point)
	}
}

// SetSaving marks a pending update and disables input.
func (p *PointPresenter) SetSaving() {
	if err := p.state.Save(); err != nil {
		p.logTransition(err)
		return
	}
	if p.state.Origin() == StatusEditing {
		p.views.ShowEditor(p.point, EditorState{IsDisabled: true, IsSaving: true})
	}
}

// SetDeleting marks a pending delete and disables input.
func (p *PointPresenter) SetDeleting() {
	if err := p.state.Delete(); err != nil {
		p.logTransition(err)
		return
	}
	if p.state.Origin() == StatusEditing {
		p.views.ShowEditor(p.point, EditorState{IsDisabled: true, IsDeleting: true})
	}
}

// SetAborting flashes an error and reverts to the state the failed action
// was issued from.
func (p *PointPresenter) SetAborting() {
	if p.views == nil {
		return
	}
	if err := p.state.Abort(); err != nil {
		p.logTransition(err)
		return
	}
	views := p.views
	views.Shake(func() {
		if p.views != views {
			return
		}
		next, err := p.state.Recover()
		if err != nil {
			p.logTransition(err)
			return
		}
		switch next {
		case StatusEditing:
			p.views.ShowEditor(p.point, EditorState{})
		default:
			p.release()
			p.views.ShowPoint(p.point)
		}
	})
}

// Destroy releases both views.
func (p *PointPresenter) Destroy() {
	if p.views == nil {
		return
	}
	p.release()
	p.views.Remove()
	p.views = nil
	p.state = ItemState{}
}

func (p *PointPresenter) release() {
	if p.arbiter != nil {
		p.arbiter.Release(p.point.ID)
	}
}

func (p *PointPresenter) handlers() PointHandlers {
	return PointHandlers{
		OnEditClick:     p.handleEditClick,
		OnFavoriteClick: p.handleFavoriteClick,
		OnFormSubmit:    p.handleFormSubmit,
		OnDeleteClick:   p.handleDeleteClick,
		OnCancel:        p.handleCancel,
	}
}

func (p *PointPresenter) handleEditClick() {
	if p.state.Status() != StatusIdle {
		return
	}
	if p.arbiter != nil {
		p.arbiter.Acquire(p.point.ID)
	}
	p.logTransition(p.state.Edit())
	p.views.ShowEditor(p.point, EditorState{})
}

func (p *PointPresenter) handleCancel() {
	if p.state.Status() != StatusEditing {
		return
	}
	p.ResetView()
	p.release()
}

func (p *PointPresenter) handleFavoriteClick() {
	if p.state.Busy() {
		return
	}
	update := p.point.Clone()
	update.IsFavorite = !update.IsFavorite
	p.onDataChange(model.ActionUpdatePoint, model.UpdatePatch, update)
}

func (p *PointPresenter) handleFormSubmit(update model.Point) {
	if p.state.Status() != StatusEditing {
		return
	}
	update.ID = p.point.ID
	updateType := model.UpdatePatch
	if model.SortRelevantChange(p.point, update) {
		updateType = model.UpdateMinor
	}
	p.onDataChange(model.ActionUpdatePoint, updateType, update)
}

func (p *PointPresenter) handleDeleteClick(model.Point) {
	if p.state.Busy() {
		return
	}
	p.onDataChange(model.ActionDeletePoint, model.UpdateMinor, p.point)
}

func (p *PointPresenter) logTransition(err error) {
	if err != nil {
		log.Warn().Err(err).Str("point-id", string(p.point.ID)).Msg("ignoring status transition")
	}
}
