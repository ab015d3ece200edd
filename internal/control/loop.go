package control

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Scheduler runs work on the UI's single logical thread.
//
// Post queues f to run on the loop. Go runs task off the loop and then queues
// settle with its result.
type Scheduler interface {
	Post(f func())
	Go(task func(context.Context) error, settle func(error))
}

// Loop is the single logical thread the UI runs on: every posted function
// runs to completion before the next one starts, in posting order.
type Loop struct {
	mtx     sync.Mutex
	queue   []func()
	wake    chan struct{}
	ctx     context.Context
	stopped bool

	afterEach func()
	tasks     sync.WaitGroup
}

// NewLoop returns a loop that calls afterEach (may be nil) whenever it has
// drained its queue, e.g. to render.
func NewLoop(afterEach func()) *Loop {
	return &Loop{
		wake:      make(chan struct{}, 1),
		ctx:       context.Background(),
		afterEach: afterEach,
	}
}

// Post queues f. It is safe to call from any goroutine.
func (l *Loop) Post(f func()) {
	l.mtx.Lock()
	if l.stopped {
		l.mtx.Unlock()
		return
	}
	l.queue = append(l.queue, f)
	l.mtx.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Go runs task on its own goroutine with the loop's context and posts settle
// with the task's result.
func (l *Loop) Go(task func(context.Context) error, settle func(error)) {
	l.mtx.Lock()
	ctx := l.ctx
	l.mtx.Unlock()

	l.tasks.Add(1)
	go func() {
		defer l.tasks.Done()
		err := task(ctx)
		l.Post(func() { settle(err) })
	}()
}

// Run processes posted functions until the context is done or Stop is called.
// Tasks started with Go after Run began receive its context.
func (l *Loop) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mtx.Lock()
	l.ctx = ctx
	l.mtx.Unlock()

	log.Debug().Msg("loop started")
	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			return
		case <-l.wake:
		}

		for {
			l.mtx.Lock()
			if l.stopped {
				l.mtx.Unlock()
				l.shutdown()
				return
			}
			if len(l.queue) == 0 {
				l.mtx.Unlock()
				break
			}
			f := l.queue[0]
			l.queue = l.queue[1:]
			l.mtx.Unlock()

			f()
		}

		if l.afterEach != nil {
			l.afterEach()
		}
	}
}

// Stop makes Run return after the function currently running.
func (l *Loop) Stop() {
	l.mtx.Lock()
	l.stopped = true
	l.mtx.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until all tasks started with Go have finished.
func (l *Loop) Wait() {
	l.tasks.Wait()
}

func (l *Loop) shutdown() {
	l.mtx.Lock()
	l.stopped = true
	l.queue = nil
	l.mtx.Unlock()
	log.Debug().Msg("loop stopped")
}
