// Package blocker provides the busy-state lock shown around asynchronous user
// actions.
package blocker

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Overlay is the visual lock a Blocker shows and hides.
// Its methods are called from timer goroutines and must not call back into
// the Blocker.
type Overlay interface {
	Show()
	Hide()
}

// Timer is a stoppable pending call.
type Timer interface {
	Stop() bool
}

// Clock provides the time functions a Blocker depends on.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Blocker shows an Overlay while at least one action is pending.
//
// A busy period that ends before the lower limit never shows the overlay,
// which avoids flicker on fast responses. Once shown, the overlay stays until
// the upper limit has passed since the busy period began.
//
// Block and Unblock nest: the busy period lasts from the first Block to the
// Unblock that pairs with the last outstanding Block.
type Blocker struct {
	lowerLimit time.Duration
	upperLimit time.Duration
	overlay    Overlay
	clock      Clock

	mtx        sync.Mutex
	depth      int
	start      time.Time
	shown      bool
	generation uint64
	pending    Timer
}

// Option configures a Blocker.
type Option func(*Blocker)

// WithClock makes the blocker use the given clock instead of the system
// clock.
func WithClock(c Clock) Option {
	return func(b *Blocker) { b.clock = c }
}

// New returns a Blocker for the given overlay and limits.
func New(overlay Overlay, lowerLimit, upperLimit time.Duration, opts ...Option) *Blocker {
	b := &Blocker{
		lowerLimit: lowerLimit,
		upperLimit: upperLimit,
		overlay:    overlay,
		clock:      systemClock{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Block begins (or nests into) a busy period.
func (b *Blocker) Block() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.depth++
	if b.depth > 1 {
		return
	}

	b.start = b.clock.Now()
	b.cancelPending()

	// a hide still pending from the previous period: just keep showing
	if b.shown {
		return
	}

	gen := b.generation
	b.pending = b.clock.AfterFunc(b.lowerLimit, func() {
		b.mtx.Lock()
		defer b.mtx.Unlock()
		if gen != b.generation || b.depth == 0 {
			return
		}
		b.pending = nil
		b.shown = true
		b.overlay.Show()
	})
}

// Unblock ends one level of the busy period.
// Unpaired calls are logged and ignored.
func (b *Blocker) Unblock() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.depth == 0 {
		log.Warn().Msg("unblock without matching block")
		return
	}
	b.depth--
	if b.depth > 0 {
		return
	}

	b.cancelPending()
	if !b.shown {
		return
	}

	elapsed := b.clock.Now().Sub(b.start)
	if elapsed >= b.upperLimit {
		b.hide()
		return
	}

	gen := b.generation
	b.pending = b.clock.AfterFunc(b.upperLimit-elapsed, func() {
		b.mtx.Lock()
		defer b.mtx.Unlock()
		if gen != b.generation || b.depth > 0 {
			return
		}
		b.pending = nil
		b.hide()
	})
}

// Busy returns whether a busy period is ongoing.
func (b *Blocker) Busy() bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.depth > 0
}

// Shown returns whether the overlay is currently shown.
func (b *Blocker) Shown() bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.shown
}

func (b *Blocker) hide() {
	b.shown = false
	b.overlay.Hide()
}

// must hold mtx
func (b *Blocker) cancelPending() {
	b.generation++
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}
