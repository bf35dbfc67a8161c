// Package uiloop provides the single execution context that owns every piece of
// user-facing state. Background work never touches that state directly: it posts a
// closure and the loop runs it, one at a time, in submission order.
package uiloop

import (
	"context"
	"sync"
)

// Loop runs posted tasks serially on one goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopCh  chan struct{}
	done    chan struct{}
	stopped bool
	once    sync.Once
}

func New() *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Post enqueues fn without blocking. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for it to finish.
// It must not be called from a task already running on the loop.
func (l *Loop) Call(fn func()) bool {
	ran := make(chan struct{})
	if !l.Post(func() {
		defer close(ran)
		fn()
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		// the task may have been the last one drained before exit
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Run executes tasks until ctx is cancelled or Stop is called. Tasks still queued
// at that point are drained before Run returns.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		l.drain()
		select {
		case <-l.wake:
		case <-l.stopCh:
			l.shutdown()
			return
		case <-ctx.Done():
			l.shutdown()
			return
		}
	}
}

// Stop asks Run to exit. Safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stopCh) })
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) shutdown() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.drain()
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}
