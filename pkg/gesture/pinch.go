package gesture

import (
	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/geometry"
)

// PinchChange carries the current and previous distance between two fingers
type PinchChange struct {
	Current  float64
	Previous float64
}

type finger struct {
	id  int
	pos geometry.Point
}

// Pinch recognises two-finger pinches. Only the first two fingers down are
// tracked; further fingers are ignored.
type Pinch struct {
	fingers      [2]*finger
	lastDistance float64
	ended        bool

	OnStart  event.Signal[float64]
	OnChange event.Signal[PinchChange]
	OnLift   event.Signal[Touch]
	OnEnd    event.Signal[struct{}]
}

// NewPinch creates a pinch tracker with no fingers down
func NewPinch() *Pinch {
	return &Pinch{ended: true}
}

// Pinching reports whether two fingers are tracked
func (p *Pinch) Pinching() bool {
	return p.count() == 2
}

// Midpoint returns the point between the two tracked fingers
func (p *Pinch) Midpoint() (geometry.Point, bool) {
	if !p.Pinching() {
		return geometry.Point{}, false
	}
	return p.fingers[0].pos.Midpoint(p.fingers[1].pos), true
}

// Tracked returns the finger with the given touch identifier
func (p *Pinch) Tracked(id int) (geometry.Point, bool) {
	if f := p.find(id); f != nil {
		return f.pos, true
	}
	return geometry.Point{}, false
}

// TouchStart registers new fingers
func (p *Pinch) TouchStart(touches []Touch) {
	for _, t := range touches {
		if p.find(t.ID) != nil {
			continue
		}
		slot := p.freeSlot()
		if slot < 0 {
			continue
		}
		p.fingers[slot] = &finger{id: t.ID, pos: t.Position}

		if p.count() == 2 {
			p.lastDistance = p.distance()
			p.ended = false
			p.OnStart.Emit(p.lastDistance)
		}
	}
}

// TouchMove updates tracked fingers and emits a change while pinching
func (p *Pinch) TouchMove(touches []Touch) {
	changed := false
	for _, t := range touches {
		if f := p.find(t.ID); f != nil {
			f.pos = t.Position
			changed = true
		}
	}

	if changed && p.Pinching() {
		current := p.distance()
		previous := p.lastDistance
		p.lastDistance = current
		p.OnChange.Emit(PinchChange{Current: current, Previous: previous})
	}
}

// TouchEnd removes lifted fingers. End is emitted once when fewer than two
// fingers remain after a start.
func (p *Pinch) TouchEnd(touches []Touch) {
	for _, t := range touches {
		for i, f := range p.fingers {
			if f == nil || f.id != t.ID {
				continue
			}
			p.fingers[i] = nil
			p.OnLift.Emit(Touch{ID: f.id, Position: t.Position})
		}

		if p.count() < 2 && !p.ended {
			p.ended = true
			p.OnEnd.Emit(struct{}{})
		}
	}
}

// Reset drops every tracked finger without emitting events
func (p *Pinch) Reset() {
	p.fingers = [2]*finger{}
	p.ended = true
	p.lastDistance = 0
}

func (p *Pinch) find(id int) *finger {
	for _, f := range p.fingers {
		if f != nil && f.id == id {
			return f
		}
	}
	return nil
}

func (p *Pinch) freeSlot() int {
	for i, f := range p.fingers {
		if f == nil {
			return i
		}
	}
	return -1
}

func (p *Pinch) count() int {
	n := 0
	for _, f := range p.fingers {
		if f != nil {
			n++
		}
	}
	return n
}

func (p *Pinch) distance() float64 {
	return p.fingers[0].pos.Distance(p.fingers[1].pos)
}
