// Package frame implements cooperative animation-frame scheduling for a
// single UI thread. Callbacks requested during a frame run on the next Tick.
package frame

import (
	"sync/atomic"
	"time"
)

// ID identifies a requested frame callback. Zero is never issued.
type ID uint64

// Callback runs once on the next frame with the frame timestamp
type Callback func(now time.Time)

// Scheduler is the subset of Queue used by the gesture engine and viewport
type Scheduler interface {
	RequestFrame(fn Callback) ID
	CancelFrame(id ID)
	Defer(fn func())
}

type request struct {
	id ID
	fn Callback
}

// Queue collects frame callbacks and deferred functions until the host
// calls Tick. All methods except Pending must be called from the UI thread.
type Queue struct {
	nextID   ID
	frames   []request
	deferred []func()
	pending  atomic.Int64
}

// NewQueue creates an empty frame queue
func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame schedules fn for the next Tick
func (q *Queue) RequestFrame(fn Callback) ID {
	q.nextID++
	q.frames = append(q.frames, request{id: q.nextID, fn: fn})
	q.updatePending()
	return q.nextID
}

// CancelFrame removes a scheduled callback. Unknown or already run IDs are ignored.
func (q *Queue) CancelFrame(id ID) {
	for i, r := range q.frames {
		if r.id == id {
			q.frames = append(q.frames[:i:i], q.frames[i+1:]...)
			q.updatePending()
			return
		}
	}
}

// Defer schedules fn to run at the start of the next Tick, before frame callbacks
func (q *Queue) Defer(fn func()) {
	q.deferred = append(q.deferred, fn)
	q.updatePending()
}

// Tick runs deferred functions, then every frame callback requested before
// this call, then any functions deferred by those callbacks.
func (q *Queue) Tick(now time.Time) {
	q.drainDeferred()

	frames := q.frames
	q.frames = nil
	q.updatePending()
	for _, r := range frames {
		r.fn(now)
	}

	q.drainDeferred()
}

func (q *Queue) drainDeferred() {
	for len(q.deferred) > 0 {
		batch := q.deferred
		q.deferred = nil
		q.updatePending()
		for _, fn := range batch {
			fn()
		}
	}
}

// Pending returns the number of queued frame callbacks and deferred functions.
// It may be called from any goroutine.
func (q *Queue) Pending() int {
	return int(q.pending.Load())
}

// Reset drops everything that is queued
func (q *Queue) Reset() {
	q.frames = nil
	q.deferred = nil
	q.updatePending()
}

func (q *Queue) updatePending() {
	q.pending.Store(int64(len(q.frames) + len(q.deferred)))
}
