// Package gesture turns raw pointer, wheel and touch input into a single
// stream of pan and zoom deltas, with inertial momentum after a drag and
// two-finger pinch zoom.
package gesture

import (
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
)

// Engine normalizes raw input from a Source. At most one gesture event is
// delivered per frame; input arriving while a frame is pending is merged.
type Engine struct {
	opts  Options
	sched frame.Scheduler
	log   *zap.Logger

	momentum *Momentum
	pinch    *Pinch

	unsubscribe func()
	pinchSubs   []*event.Subscription
	destroyed   bool

	dragging    bool
	isRight     bool
	origin      geometry.Point
	downAt      geometry.Point
	cursor      geometry.Point
	lastVirtual geometry.Point
	pageHeight  float64

	primaryTouch int
	hasPrimary   bool
	pinchAnchor  *geometry.Point
	pinched      bool

	frameID frame.ID
	pending *Event

	OnGesture event.Signal[Event]
	OnStop    event.Signal[Stop]
	OnPointer event.Signal[PointerEvent]
}

// NewEngine creates an engine. src may be nil, in which case the host feeds
// events through Handle.
func NewEngine(src Source, sched frame.Scheduler, opts Options) *Engine {
	opts = opts.normalize()
	e := &Engine{
		opts:  opts,
		sched: sched,
		log:   opts.Logger.Named("gesture"),
		pinch: NewPinch(),
	}
	e.momentum = NewMomentum(sched, opts, e.onMomentumUpdate, e.onMomentumStop)

	e.pinchSubs = []*event.Subscription{
		e.pinch.OnStart.On(e.onPinchStart),
		e.pinch.OnChange.On(e.onPinchChange),
		e.pinch.OnEnd.On(e.onPinchEnd),
	}

	if src != nil {
		e.unsubscribe = src.Subscribe(e.Handle)
	}
	return e
}

// Pinch returns the pinch tracker, for observing its lifecycle events
func (e *Engine) Pinch() *Pinch {
	return e.pinch
}

// Momentum returns the momentum tracker
func (e *Engine) Momentum() *Momentum {
	return e.momentum
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.opts
}

// SetOptions replaces the tuning options. The clock and logger of the engine
// are kept when opts leaves them unset.
func (e *Engine) SetOptions(opts Options) {
	if opts.Clock == nil {
		opts.Clock = e.opts.Clock
	}
	if opts.Logger == nil {
		opts.Logger = e.opts.Logger
	}
	e.opts = opts.normalize()
	e.momentum.Configure(e.opts)
	e.log.Debug("options changed",
		zap.Float64("friction", e.opts.Friction),
		zap.Float64("multiplier", e.opts.Multiplier),
		zap.Bool("bounce", e.opts.Bounce))
}

// SetPageHeight sets the height used to scale page-mode wheel deltas
func (e *Engine) SetPageHeight(h float64) {
	e.pageHeight = h
}

// SetBounds limits the virtual drag position; nil removes the limit
func (e *Engine) SetBounds(b *geometry.Rect) {
	e.momentum.SetBounds(b)
}

// Dragging reports whether a pointer is down
func (e *Engine) Dragging() bool {
	return e.dragging
}

// Handle processes one raw event. Malformed events are ignored.
func (e *Engine) Handle(raw RawEvent) {
	if e.destroyed {
		return
	}
	now := raw.Time
	if now.IsZero() {
		now = e.opts.Clock()
	}

	switch raw.Kind {
	case PointerDown, PointerMove, PointerUp, Wheel:
		if raw.Position == nil || !raw.Position.IsFinite() {
			e.log.Debug("ignoring event without position", zap.Int("kind", int(raw.Kind)))
			return
		}
	case TouchStart, TouchMove, TouchEnd, TouchCancel:
		if len(raw.Touches) == 0 {
			e.log.Debug("ignoring touch event without touches", zap.Int("kind", int(raw.Kind)))
			return
		}
	default:
		return
	}

	switch raw.Kind {
	case PointerDown:
		e.pointerDown(*raw.Position, raw.Button == ButtonRight, now)
	case PointerMove:
		e.pointerMove(*raw.Position, now)
	case PointerUp:
		e.pointerUp(*raw.Position, now)
	case Wheel:
		e.wheel(raw, now)
	case TouchStart:
		e.touchStart(raw.Touches, now)
	case TouchMove:
		e.touchMove(raw.Touches, now)
	case TouchEnd, TouchCancel:
		e.touchEnd(raw.Touches, now)
	}
}

func (e *Engine) pointerDown(p geometry.Point, right bool, now time.Time) {
	if e.momentum.Animating() {
		e.log.Debug("momentum interrupted")
	}
	e.momentum.Start(p, now)
	e.dragging = true
	e.pinched = false
	e.isRight = right
	e.origin = p
	e.downAt = p
	e.cursor = p
	e.lastVirtual = e.momentum.Position()

	e.OnPointer.Emit(PointerEvent{Action: ActionDown, X: p.X, Y: p.Y, IsRight: right})
}

func (e *Engine) pointerMove(p geometry.Point, now time.Time) {
	e.cursor = p
	if !e.dragging {
		e.OnPointer.Emit(PointerEvent{Action: ActionHover, X: p.X, Y: p.Y})
		return
	}

	e.momentum.Move(p, now)
	e.OnPointer.Emit(PointerEvent{Action: ActionDrag, X: p.X, Y: p.Y, IsRight: e.isRight})
}

func (e *Engine) pointerUp(p geometry.Point, now time.Time) {
	if !e.dragging {
		return
	}
	e.dragging = false
	e.cursor = p
	click := !e.pinched && p.Distance(e.downAt) < e.opts.ClickSlop

	if e.momentum.Release(now) {
		e.log.Debug("momentum started")
	}

	e.OnPointer.Emit(PointerEvent{Action: ActionUp, X: p.X, Y: p.Y, IsRight: e.isRight})
	if click {
		e.OnPointer.Emit(PointerEvent{Action: ActionClick, X: p.X, Y: p.Y, IsRight: e.isRight})
	}
}

func (e *Engine) wheel(raw RawEvent, now time.Time) {
	p := *raw.Position
	e.cursor = p
	dz := WheelDelta(raw.DeltaY, raw.DeltaMode, e.opts.WheelLineHeight, e.pageHeight)
	if dz == 0 {
		return
	}
	e.schedule(Event{
		DZ:        dz,
		X:         p.X,
		Y:         p.Y,
		X0:        p.X,
		Y0:        p.Y,
		Timestamp: now,
	})
}

func (e *Engine) touchStart(touches []Touch, now time.Time) {
	first := !e.hasPrimary
	e.pinch.TouchStart(touches)

	if first && !e.pinch.Pinching() {
		t := touches[0]
		e.primaryTouch = t.ID
		e.hasPrimary = true
		e.pointerDown(t.Position, false, now)
	}
}

func (e *Engine) touchMove(touches []Touch, now time.Time) {
	e.pinch.TouchMove(touches)

	if !e.hasPrimary {
		return
	}
	for _, t := range touches {
		if t.ID == e.primaryTouch {
			e.pointerMove(t.Position, now)
		}
	}
}

func (e *Engine) touchEnd(touches []Touch, now time.Time) {
	e.pinch.TouchEnd(touches)

	if !e.hasPrimary {
		return
	}
	for _, t := range touches {
		if t.ID == e.primaryTouch {
			e.hasPrimary = false
			e.pointerUp(t.Position, now)
		}
	}
}

func (e *Engine) onPinchStart(distance float64) {
	mid, _ := e.pinch.Midpoint()
	e.pinchAnchor = &mid
	e.pinched = true
	e.momentum.Pause()
	e.log.Debug("pinch started", zap.Float64("distance", distance))
}

func (e *Engine) onPinchChange(c PinchChange) {
	if e.pinchAnchor == nil {
		return
	}
	a := *e.pinchAnchor
	e.schedule(Event{
		DZ:        -(c.Current - c.Previous) * e.opts.PinchMultiplier,
		X:         a.X,
		Y:         a.Y,
		X0:        a.X,
		Y0:        a.Y,
		Timestamp: e.opts.Clock(),
	})
}

func (e *Engine) onPinchEnd(struct{}) {
	if e.pinchAnchor == nil {
		return
	}
	e.pinchAnchor = nil
	e.log.Debug("pinch ended")

	if e.hasPrimary {
		if p, ok := e.pinch.Tracked(e.primaryTouch); ok {
			e.cursor = p
			e.momentum.Resume(p, e.opts.Clock())
			return
		}
	}
	e.momentum.Resume(e.cursor, e.opts.Clock())
}

func (e *Engine) onMomentumUpdate(pos geometry.Point) {
	delta := pos.Sub(e.lastVirtual)
	e.lastVirtual = pos
	e.schedule(Event{
		DX:        delta.X,
		DY:        delta.Y,
		X:         e.cursor.X,
		Y:         e.cursor.Y,
		X0:        e.origin.X,
		Y0:        e.origin.Y,
		IsRight:   e.isRight,
		Timestamp: e.opts.Clock(),
	})
}

func (e *Engine) onMomentumStop(pos geometry.Point) {
	e.log.Debug("drag stopped")
	e.OnStop.Emit(Stop{X: e.cursor.X, Y: e.cursor.Y})
}

// schedule delivers ev on the next frame. While a frame is pending, ev is
// merged into the event that frame will deliver.
func (e *Engine) schedule(ev Event) {
	if e.frameID != 0 {
		e.pending.merge(ev)
		return
	}

	e.pending = &ev
	e.frameID = e.sched.RequestFrame(func(time.Time) {
		out := *e.pending
		e.frameID = 0
		e.pending = nil
		e.OnGesture.Emit(out)
	})
}

// Destroy detaches from the source and cancels pending frames and
// momentum. It is safe to call more than once.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.frameID != 0 {
		e.sched.CancelFrame(e.frameID)
		e.frameID = 0
	}
	e.pending = nil
	e.momentum.Cancel()

	for _, sub := range e.pinchSubs {
		sub.Off()
	}
	e.pinch.Reset()
	e.OnGesture.Clear()
	e.OnStop.Clear()
	e.OnPointer.Clear()
	e.log.Debug("engine destroyed")
}
