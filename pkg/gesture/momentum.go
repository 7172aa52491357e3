package gesture

import (
	"math"
	"time"

	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
)

type sample struct {
	pos  geometry.Point
	time time.Time
}

// Momentum tracks a virtual position driven by a pointer and keeps it moving
// with friction after release. Out of bounds the position is pulled back
// elastically, or clamped when bounce is disabled.
type Momentum struct {
	friction      float64
	multiplier    float64
	stopThreshold float64
	bounce        bool
	bounds        *geometry.Rect

	sched    frame.Scheduler
	onUpdate func(geometry.Point)
	onStop   func(geometry.Point)

	target       geometry.Point
	pointerLast  geometry.Point
	tracking     []sample
	velocity     geometry.Point
	dragging     bool
	paused       bool
	decelerating bool
	frameID      frame.ID
}

// NewMomentum creates a momentum tracker. onUpdate receives every new virtual
// position, onStop the final one.
func NewMomentum(sched frame.Scheduler, opts Options, onUpdate, onStop func(geometry.Point)) *Momentum {
	opts = opts.normalize()
	return &Momentum{
		friction:      opts.Friction,
		multiplier:    opts.Multiplier,
		stopThreshold: stopThresholdRatio * opts.Multiplier,
		bounce:        opts.Bounce,
		bounds:        opts.Bounds,
		sched:         sched,
		onUpdate:      onUpdate,
		onStop:        onStop,
	}
}

// Configure replaces the physics parameters. A running animation continues
// with the new values.
func (m *Momentum) Configure(opts Options) {
	opts = opts.normalize()
	m.friction = opts.Friction
	m.multiplier = opts.Multiplier
	m.stopThreshold = stopThresholdRatio * opts.Multiplier
	m.bounce = opts.Bounce
	m.SetBounds(opts.Bounds)
}

// Position returns the current virtual position
func (m *Momentum) Position() geometry.Point {
	return m.target
}

// SetPosition moves the virtual position without emitting an update
func (m *Momentum) SetPosition(p geometry.Point) {
	m.target = p
}

// SetBounds replaces the bounds of the virtual position; nil removes them
func (m *Momentum) SetBounds(b *geometry.Rect) {
	if b == nil {
		m.bounds = nil
		return
	}
	r := geometry.NewRect(b.Min, b.Max)
	m.bounds = &r
}

// Animating reports whether a momentum animation is running
func (m *Momentum) Animating() bool {
	return m.decelerating
}

// Pause ignores pointer movement until Resume
func (m *Momentum) Pause() {
	m.paused = true
}

// Resume continues tracking from p without a jump
func (m *Momentum) Resume(p geometry.Point, now time.Time) {
	m.paused = false
	m.pointerLast = p
	m.tracking = m.tracking[:0]
	m.addTrackingPoint(p, now)
	m.dragging = true
}

// Start begins a drag at p, cancelling any running animation
func (m *Momentum) Start(p geometry.Point, now time.Time) {
	m.Cancel()
	m.pointerLast = p
	m.tracking = m.tracking[:0]
	m.addTrackingPoint(p, now)
	m.dragging = true
}

// Move applies pointer movement to the virtual position
func (m *Momentum) Move(p geometry.Point, now time.Time) {
	if !m.dragging || m.paused {
		return
	}

	delta := p.Sub(m.pointerLast).Mul(m.multiplier)
	m.pointerLast = p
	m.addTrackingPoint(p, now)

	if m.bounce {
		diff := m.outOfBounds()
		if diff.X != 0 {
			delta.X /= dragDamping(diff.X)
		}
		if diff.Y != 0 {
			delta.Y /= dragDamping(diff.Y)
		}
		m.target = m.target.Add(delta)
	} else {
		m.target = m.target.Add(delta)
		m.target = m.clamp(m.target)
	}

	m.emitUpdate()
}

// Release ends the drag and starts the momentum animation when the release
// velocity is high enough or the position is out of bounds. It reports
// whether an animation was started; otherwise onStop ran synchronously.
func (m *Momentum) Release(now time.Time) bool {
	if !m.dragging {
		return false
	}
	m.dragging = false
	m.paused = false

	if len(m.tracking) == 0 {
		m.stop()
		return false
	}
	m.addTrackingPoint(m.pointerLast, now)

	first := m.tracking[0]
	last := m.tracking[len(m.tracking)-1]
	offset := last.pos.Sub(first.pos)
	elapsed := float64(last.time.Sub(first.time)) / float64(time.Millisecond)
	d := (elapsed / frameDuration) / m.multiplier

	m.velocity = geometry.NewPoint(safeDiv(offset.X, d), safeDiv(offset.Y, d))

	if math.Abs(m.velocity.X) > startVelocity || math.Abs(m.velocity.Y) > startVelocity || !m.inBounds() {
		m.decelerating = true
		m.frameID = m.sched.RequestFrame(m.step)
		return true
	}

	m.stop()
	return false
}

// Cancel stops a running animation without firing onStop
func (m *Momentum) Cancel() {
	if m.frameID != 0 {
		m.sched.CancelFrame(m.frameID)
		m.frameID = 0
	}
	m.decelerating = false
	m.velocity = geometry.Point{}
}

func (m *Momentum) step(time.Time) {
	m.frameID = 0
	if !m.decelerating {
		return
	}

	m.velocity = m.velocity.Mul(m.friction)
	m.target = m.target.Add(m.velocity)

	diff := m.outOfBounds()
	moving := math.Abs(m.velocity.X) > m.stopThreshold || math.Abs(m.velocity.Y) > m.stopThreshold
	if !moving && diff.X == 0 && diff.Y == 0 {
		m.decelerating = false
		m.stop()
		return
	}

	if m.bounce {
		m.velocity.X = rebound(diff.X, m.velocity.X)
		m.velocity.Y = rebound(diff.Y, m.velocity.Y)
	} else {
		if diff.X != 0 {
			m.target.X = clampTo(m.target.X, m.bounds.Min.X, m.bounds.Max.X)
			m.velocity.X = 0
		}
		if diff.Y != 0 {
			m.target.Y = clampTo(m.target.Y, m.bounds.Min.Y, m.bounds.Max.Y)
			m.velocity.Y = 0
		}
	}

	m.emitUpdate()
	m.frameID = m.sched.RequestFrame(m.step)
}

// rebound decelerates velocity moving further out and pulls it back in otherwise
func rebound(diff, v float64) float64 {
	if diff == 0 {
		return v
	}
	if diff*v <= 0 {
		return v + diff*bounceDeceleration
	}
	adjust := reboundAdjust
	if diff < 0 {
		adjust = -reboundAdjust
	}
	return (diff + adjust) * bounceAcceleration
}

// outOfBounds returns, per axis, the distance from the target back to the
// nearest bound: positive below the minimum, negative above the maximum.
func (m *Momentum) outOfBounds() geometry.Point {
	var diff geometry.Point
	if m.bounds == nil {
		return diff
	}
	b := m.bounds
	switch {
	case m.target.X < b.Min.X:
		diff.X = b.Min.X - m.target.X
	case m.target.X > b.Max.X:
		diff.X = b.Max.X - m.target.X
	}
	switch {
	case m.target.Y < b.Min.Y:
		diff.Y = b.Min.Y - m.target.Y
	case m.target.Y > b.Max.Y:
		diff.Y = b.Max.Y - m.target.Y
	}
	return diff
}

func (m *Momentum) inBounds() bool {
	diff := m.outOfBounds()
	return diff.X == 0 && diff.Y == 0
}

func (m *Momentum) clamp(p geometry.Point) geometry.Point {
	if m.bounds == nil {
		return p
	}
	return geometry.NewPoint(
		clampTo(p.X, m.bounds.Min.X, m.bounds.Max.X),
		clampTo(p.Y, m.bounds.Min.Y, m.bounds.Max.Y),
	)
}

func (m *Momentum) addTrackingPoint(p geometry.Point, now time.Time) {
	for len(m.tracking) > 0 {
		if now.Sub(m.tracking[0].time) <= trackingWindow {
			break
		}
		m.tracking = m.tracking[1:]
	}
	m.tracking = append(m.tracking, sample{pos: p, time: now})
}

func (m *Momentum) emitUpdate() {
	if m.onUpdate != nil {
		m.onUpdate(m.target)
	}
}

func (m *Momentum) stop() {
	if m.onStop != nil {
		m.onStop(m.target)
	}
}

func dragDamping(d float64) float64 {
	return dragResistance*d*d + 1
}

func safeDiv(a, b float64) float64 {
	v := a / b
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampTo(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}
