package gesture

import (
	"time"

	"github.com/philipparndt/goplane/pkg/frame"
)

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type recorder struct {
	gestures []Event
	stops    []Stop
	pointers []PointerEvent
}

func newTestEngine(opts Options) (*Engine, *frame.Queue, *manualClock, *recorder) {
	q := frame.NewQueue()
	clock := newManualClock()
	opts.Clock = clock.Now
	e := NewEngine(nil, q, opts)

	rec := &recorder{}
	e.OnGesture.On(func(ev Event) { rec.gestures = append(rec.gestures, ev) })
	e.OnStop.On(func(s Stop) { rec.stops = append(rec.stops, s) })
	e.OnPointer.On(func(p PointerEvent) { rec.pointers = append(rec.pointers, p) })
	return e, q, clock, rec
}

// runUntilIdle ticks the queue until nothing is pending or the limit is hit
func runUntilIdle(q *frame.Queue, clock *manualClock, limit int) int {
	ticks := 0
	for q.Pending() > 0 && ticks < limit {
		clock.Advance(16 * time.Millisecond)
		q.Tick(clock.Now())
		ticks++
	}
	return ticks
}

func (r *recorder) actions() []PointerAction {
	out := make([]PointerAction, 0, len(r.pointers))
	for _, p := range r.pointers {
		out = append(out, p.Action)
	}
	return out
}

type fakeSource struct {
	handler func(RawEvent)
	unsubs  int
}

func (s *fakeSource) Subscribe(h func(RawEvent)) func() {
	s.handler = h
	return func() {
		s.handler = nil
		s.unsubs++
	}
}

func (s *fakeSource) send(ev RawEvent) {
	if s.handler != nil {
		s.handler(ev)
	}
}
