package presenter

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
)

// CreationPresenter owns the creation flow of a point that does not exist
// yet. At most one creation flow is active per instance.
type CreationPresenter struct {
	factory ViewFactory
	views   PointViews
	point   model.Point
	state   ItemState

	onDataChange DataChangeFunc
	onDestroy    func()
}

// NewCreationPresenter returns an inactive creation presenter.
// onDestroy is called whenever an active flow is torn down, be it by cancel,
// by successful creation or by the list being cleared.
func NewCreationPresenter(factory ViewFactory, onDataChange DataChangeFunc, onDestroy func()) *CreationPresenter {
	return &CreationPresenter{
		factory:      factory,
		onDataChange: onDataChange,
		onDestroy:    onDestroy,
	}
}

// Active returns whether a creation flow is open.
func (p *CreationPresenter) Active() bool { return p.views != nil }

// Status returns the status of the creation flow.
func (p *CreationPresenter) Status() Status { return p.state.Status() }

// Init opens the creation editor with a blank point.
// It does nothing if a creation flow is already open.
func (p *CreationPresenter) Init(ref model.Reference, now time.Time) {
	if p.views != nil {
		return
	}
	p.point = model.BlankPoint(ref, now)
	p.state = ItemState{}
	p.views = p.factory.NewPointViews(ref, PointHandlers{
		OnFormSubmit:  p.handleFormSubmit,
		OnDeleteClick: func(model.Point) { p.Destroy() },
		OnCancel:      p.Destroy,
	})
	p.logTransition(p.state.Edit())
	p.views.ShowEditor(p.point, EditorState{IsNew: true})
}

// Destroy closes the creation flow without any model effect.
func (p *CreationPresenter) Destroy() {
	if p.views == nil {
		return
	}
	p.views.Remove()
	p.views = nil
	p.state = ItemState{}
	if p.onDestroy != nil {
		p.onDestroy()
	}
}

// SetSaving marks the pending creation and disables input.
func (p *CreationPresenter) SetSaving() {
	if p.views == nil {
		return
	}
	if err := p.state.Save(); err != nil {
		p.logTransition(err)
		return
	}
	p.views.ShowEditor(p.point, EditorState{IsNew: true, IsDisabled: true, IsSaving: true})
}

// SetAborting flashes an error and re-enables the creation editor.
func (p *CreationPresenter) SetAborting() {
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
		if _, err := p.state.Recover(); err != nil {
			p.logTransition(err)
			return
		}
		p.views.ShowEditor(p.point, EditorState{IsNew: true})
	})
}

func (p *CreationPresenter) handleFormSubmit(point model.Point) {
	if p.state.Status() != StatusEditing {
		return
	}
	point.ID = ""
	p.point = point.Clone()
	p.onDataChange(model.ActionAddPoint, model.UpdateMinor, p.point)
}

func (p *CreationPresenter) logTransition(err error) {
	if err != nil {
		log.Warn().Err(err).Msg("ignoring new point status transition")
	}
}
