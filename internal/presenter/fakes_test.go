package presenter_test

import (
	"time"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
)

var baseDate = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

type fakeViews struct {
	handlers presenter.PointHandlers
	showing  string
	point    model.Point
	editor   presenter.EditorState
	shakes   int
	removed  bool
	// pendingShake holds the done callback of the last Shake until released
	pendingShake func()
	holdShake    bool
}

func (v *fakeViews) ShowPoint(p model.Point) { v.showing, v.point = "point", p }
func (v *fakeViews) ShowEditor(p model.Point, st presenter.EditorState) {
	v.showing, v.point, v.editor = "editor", p, st
}
func (v *fakeViews) Shake(done func()) {
	v.shakes++
	if v.holdShake {
		v.pendingShake = done
		return
	}
	done()
}
func (v *fakeViews) Remove() { v.removed = true }

type fakeFactory struct {
	created []*fakeViews
	hold    bool
}

func (f *fakeFactory) NewPointViews(_ model.Reference, h presenter.PointHandlers) presenter.PointViews {
	v := &fakeViews{handlers: h, holdShake: f.hold}
	f.created = append(f.created, v)
	return v
}

func (f *fakeFactory) last() *fakeViews { return f.created[len(f.created)-1] }

type dispatched struct {
	action     model.UserAction
	updateType model.UpdateType
	point      model.Point
}

type recorder struct {
	calls []dispatched
}

func (r *recorder) dispatch(a model.UserAction, ut model.UpdateType, p model.Point) {
	r.calls = append(r.calls, dispatched{a, ut, p})
}

type fakeArbiter struct {
	holder   model.PointID
	acquired []model.PointID
}

func (a *fakeArbiter) Acquire(id model.PointID) {
	a.holder = id
	a.acquired = append(a.acquired, id)
}
func (a *fakeArbiter) Release(id model.PointID) {
	if a.holder == id {
		a.holder = ""
	}
}

func samplePoint(id model.PointID) model.Point {
	return model.Point{
		ID:          id,
		Type:        model.PointTypeTrain,
		Start:       baseDate.Add(8 * time.Hour),
		End:         baseDate.Add(11 * time.Hour),
		Destination: "gva",
		BasePrice:   60,
		Offers:      []model.OfferID{},
	}
}
