package panes

import (
	"fmt"
	"time"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/presenter"
	"github.com/ja-he/tripplan/internal/styling"
)

// PriceStep is the amount a single price adjustment changes the base price by.
const PriceStep = 10

// TimeStep is the amount a single start or end shift moves the time by.
const TimeStep = time.Hour

// ItemView is the display/edit view pair of one point in a ListPane.
// Implements presenter.PointViews.
//
// While the editor is shown, the view holds a draft of the point that the
// editing operations change; the draft is handed to the handlers on submit.
type ItemView struct {
	list     *ListPane
	ref      model.Reference
	handlers presenter.PointHandlers

	point   model.Point
	draft   model.Point
	editing bool
	state   presenter.EditorState

	shaking bool
	removed bool
}

// ShowPoint shows the display view for the point.
func (v *ItemView) ShowPoint(p model.Point) {
	v.point = p.Clone()
	v.editing = false
	v.state = presenter.EditorState{}
	v.list.noticeShown(v)
}

// ShowEditor shows the editor for the point.
//
// An editor that is already open keeps its draft when it comes back from a
// disabled state (a pending or failed save), so user input survives a
// rejected action.
func (v *ItemView) ShowEditor(p model.Point, state presenter.EditorState) {
	opening := !v.editing
	keepDraft := v.editing && (state.IsDisabled || v.state.IsDisabled)
	v.point = p.Clone()
	if !keepDraft {
		v.draft = p.Clone()
	}
	v.editing = true
	v.state = state
	if opening {
		v.list.focus(v)
	}
	v.list.noticeShown(v)
}

// Shake flashes the view in the error style and calls done on the UI loop
// once the flash is over.
func (v *ItemView) Shake(done func()) {
	v.shaking = true
	v.list.after(v.list.shakeDuration, func() {
		v.list.post(func() {
			v.shaking = false
			done()
		})
	})
}

// Remove removes the view from its list.
func (v *ItemView) Remove() {
	v.removed = true
	v.list.remove(v)
}

// Point returns the point the view currently shows.
func (v *ItemView) Point() model.Point { return v.point }

// Draft returns the editor's working copy.
func (v *ItemView) Draft() model.Point { return v.draft }

// Editing returns whether the editor is shown.
func (v *ItemView) Editing() bool { return v.editing }

// State returns the editor state last shown.
func (v *ItemView) State() presenter.EditorState { return v.state }

// Shaking returns whether the error flash is running.
func (v *ItemView) Shaking() bool { return v.shaking }

// Edit requests the editor for a displayed point.
func (v *ItemView) Edit() {
	if v.editing || v.handlers.OnEditClick == nil {
		return
	}
	v.handlers.OnEditClick()
}

// ToggleFavorite requests flipping the favorite flag.
func (v *ItemView) ToggleFavorite() {
	if v.handlers.OnFavoriteClick == nil {
		return
	}
	v.handlers.OnFavoriteClick()
}

// Delete requests deleting the point. For a point that does not exist yet,
// this cancels its creation.
func (v *ItemView) Delete() {
	if v.handlers.OnDeleteClick == nil || (v.editing && v.state.IsDisabled) {
		return
	}
	if v.editing {
		v.handlers.OnDeleteClick(v.draft.Clone())
		return
	}
	v.handlers.OnDeleteClick(v.point.Clone())
}

// Submit hands the draft to the submit handler.
func (v *ItemView) Submit() {
	if !v.editable() || v.handlers.OnFormSubmit == nil {
		return
	}
	v.handlers.OnFormSubmit(v.draft.Clone())
}

// Cancel closes the editor without saving.
func (v *ItemView) Cancel() {
	if !v.editable() || v.handlers.OnCancel == nil {
		return
	}
	v.handlers.OnCancel()
}

// CycleType moves the draft's type by delta through model.PointTypes.
// Changing the type deselects all offers, as offers belong to a type.
func (v *ItemView) CycleType(delta int) {
	if !v.editable() {
		return
	}
	i := indexOfType(v.draft.Type)
	next := model.PointTypes[wrap(i+delta, len(model.PointTypes))]
	if next != v.draft.Type {
		v.draft.Type = next
		v.draft.Offers = []model.OfferID{}
	}
}

// CycleDestination moves the draft's destination by delta through the known
// destinations.
func (v *ItemView) CycleDestination(delta int) {
	if !v.editable() || len(v.ref.Destinations) == 0 {
		return
	}
	i := -1
	for j, d := range v.ref.Destinations {
		if d.ID == v.draft.Destination {
			i = j
			break
		}
	}
	if i < 0 && delta < 0 {
		i = 0
	}
	v.draft.Destination = v.ref.Destinations[wrap(i+delta, len(v.ref.Destinations))].ID
}

// AdjustPrice changes the draft's base price by delta, never below zero.
func (v *ItemView) AdjustPrice(delta int) {
	if !v.editable() {
		return
	}
	v.draft.BasePrice += delta
	if v.draft.BasePrice < 0 {
		v.draft.BasePrice = 0
	}
}

// ShiftStart moves the draft's start; the end follows if the start would pass
// it.
func (v *ItemView) ShiftStart(d time.Duration) {
	if !v.editable() {
		return
	}
	v.draft.Start = v.draft.Start.Add(d)
	if v.draft.End.Before(v.draft.Start) {
		v.draft.End = v.draft.Start
	}
}

// ShiftEnd moves the draft's end, never before the start.
func (v *ItemView) ShiftEnd(d time.Duration) {
	if !v.editable() {
		return
	}
	v.draft.End = v.draft.End.Add(d)
	if v.draft.End.Before(v.draft.Start) {
		v.draft.End = v.draft.Start
	}
}

// ToggleOffer toggles the n-th (1-based) offer available for the draft's
// type.
func (v *ItemView) ToggleOffer(n int) {
	if !v.editable() {
		return
	}
	offers := v.ref.OffersFor(v.draft.Type)
	if n < 1 || n > len(offers) {
		return
	}
	v.draft.ToggleOffer(offers[n-1].ID)
}

func (v *ItemView) editable() bool {
	return v.editing && !v.state.IsDisabled && !v.removed
}

// height returns the number of lines the view takes up.
func (v *ItemView) height() int {
	if v.editing {
		return editorHeight
	}
	if len(v.ref.SelectedOffers(v.point)) > 0 {
		return 2
	}
	return 1
}

const editorHeight = 10

func (v *ItemView) draw(x, y, w int, selected bool) {
	if v.editing {
		v.drawEditor(x, y, w, selected)
		return
	}
	v.drawDisplay(x, y, w, selected)
}

func (v *ItemView) rowStyle(selected bool) styling.DrawStyling {
	ss := v.list.Stylesheet
	style := ss.Normal
	if selected {
		style = ss.Selected
	}
	if v.shaking {
		style = ss.Error
	}
	if v.list.blocked() {
		style = style.DefaultDimmed()
	}
	return style
}

func (v *ItemView) drawDisplay(x, y, w int, selected bool) {
	style := v.rowStyle(selected)
	r := v.list.Renderer
	loc := v.list.location
	p := v.point

	r.DrawBox(x, y, w, v.height(), style)

	const (
		dateW  = 7
		timesW = 14
		durW   = 12
		priceW = 9
		favW   = 2
	)
	titleW := w - dateW - timesW - durW - priceW - favW
	col := x

	r.DrawText(col, y, dateW, 1, style.Bolded(), fitLeft(p.Start.In(loc).Format(listDateFormat), dateW))
	col += dateW

	title := fmt.Sprintf("%s %s", p.Type.Title(), v.ref.DestinationName(p.Destination))
	r.DrawText(col, y, titleW, 1, style, fitLeft(title, titleW))
	col += max(titleW, 0)

	times := fmt.Sprintf("%s - %s", p.Start.In(loc).Format(listTimeFormat), p.End.In(loc).Format(listTimeFormat))
	r.DrawText(col, y, timesW, 1, style, fitLeft(times, timesW))
	col += timesW

	r.DrawText(col, y, durW, 1, style.Italicized(), fitLeft(formatDuration(p.Duration()), durW))
	col += durW

	r.DrawText(col, y, priceW, 1, style, fitRight(formatPrice(p.BasePrice), priceW-1))
	col += priceW

	if p.IsFavorite {
		favStyle := v.list.Stylesheet.Favorite
		if v.list.blocked() {
			favStyle = favStyle.DefaultDimmed()
		}
		r.DrawText(col, y, favW, 1, favStyle, "★")
	}

	offers := v.ref.SelectedOffers(p)
	if len(offers) > 0 {
		text := ""
		for i, o := range offers {
			if i > 0 {
				text += ", "
			}
			text += fmt.Sprintf("+ %s %s", o.Title, formatPrice(o.Price))
		}
		r.DrawText(x+dateW, y+1, w-dateW, 1, style.Italicized(), fitLeft(text, w-dateW))
	}
}

func (v *ItemView) drawEditor(x, y, w int, selected bool) {
	ss := v.list.Stylesheet
	style := ss.Editor
	labelStyle := ss.EditorLabel
	if v.shaking {
		style = ss.Error
		labelStyle = ss.Error.Bolded()
	}
	if v.state.IsDisabled || v.list.blocked() {
		style = style.DefaultDimmed()
		labelStyle = labelStyle.DefaultDimmed()
	}
	r := v.list.Renderer
	loc := v.list.location
	d := v.draft

	r.DrawBox(x, y, w, editorHeight, style)

	header := "Edit point"
	if v.state.IsNew {
		header = "New point"
	}
	switch {
	case v.state.IsSaving:
		header += " (saving...)"
	case v.state.IsDeleting:
		header += " (deleting...)"
	}
	if selected {
		header = "> " + header
	}
	r.DrawText(x, y, w, 1, labelStyle.Bolded(), fitLeft(header, w))

	const labelW = 14
	valueW := w - labelW - 1
	line := y + 1
	field := func(label, value string) {
		r.DrawText(x+1, line, labelW, 1, labelStyle, fitLeft(label, labelW))
		r.DrawText(x+1+labelW, line, valueW, 1, style, fitLeft(value, valueW))
		line++
	}

	field("type", d.Type.Title())
	dest, known := v.ref.Destination(d.Destination)
	field("destination", v.ref.DestinationName(d.Destination))
	if known {
		field("", dest.Description)
	} else {
		field("", "")
	}
	field("from", d.Start.In(loc).Format(editorTimeFormat))
	field("to", fmt.Sprintf("%s (%s)", d.End.In(loc).Format(editorTimeFormat), formatDuration(d.Duration())))
	field("price", formatPrice(d.BasePrice))

	offerText := ""
	for i, o := range v.ref.OffersFor(d.Type) {
		mark := "[ ]"
		if d.HasOffer(o.ID) {
			mark = "[x]"
		}
		offerText = joinNonEmpty("  ", offerText, fmt.Sprintf("%d%s %s +%d", i+1, mark, o.Title, o.Price))
	}
	if offerText == "" {
		offerText = "none available"
	}
	field("offers", offerText)

	sunText := "unknown"
	if known {
		if st, ok := model.SunTimesAt(dest, d.Start.In(loc)); ok {
			sunText = fmt.Sprintf("rise %s  set %s", st.Rise.Format(listTimeFormat), st.Set.Format(listTimeFormat))
		}
	}
	sunStyle := ss.SunTimes
	if v.state.IsDisabled || v.list.blocked() {
		sunStyle = sunStyle.DefaultDimmed()
	}
	r.DrawText(x+1, line, labelW, 1, labelStyle, fitLeft("sun", labelW))
	r.DrawText(x+1+labelW, line, valueW, 1, sunStyle, fitLeft(sunText, valueW))
	line++

	total := v.ref.Cost(d)
	r.DrawText(x+1, line, w-1, 1, labelStyle.Italicized(), fitLeft(fmt.Sprintf("total %s", formatPrice(total)), w-1))
}

func indexOfType(t model.PointType) int {
	for i, known := range model.PointTypes {
		if known == t {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
