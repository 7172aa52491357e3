package gesture

import (
	"time"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// DeviceState is the input state an immediate-mode toolkit reports for one
// frame. Wheel is a delta in WheelMode units, positive scrolling down.
type DeviceState struct {
	Mouse     geometry.Point
	Buttons   [3]bool // held down, indexed by Button
	Wheel     float64
	WheelMode WheelMode
	Touches   []Touch
	Time      time.Time
}

// Poller turns successive DeviceState snapshots into raw events. It is a
// Source for hosts that poll input once per frame instead of receiving
// callbacks. While fingers are down, mouse state is ignored because toolkits
// emulate the mouse from the first touch.
type Poller struct {
	handler func(RawEvent)
	prev    DeviceState
	started bool
	down    bool
	button  Button
}

var _ Source = (*Poller)(nil)

// NewPoller creates a poller with no previous state
func NewPoller() *Poller {
	return &Poller{}
}

// Subscribe implements Source
func (p *Poller) Subscribe(handler func(RawEvent)) func() {
	p.handler = handler
	return func() { p.handler = nil }
}

// Update compares s with the previous snapshot and emits the differences
func (p *Poller) Update(s DeviceState) {
	if !p.started {
		p.started = true
		p.prev = DeviceState{Mouse: s.Mouse}
	}

	touching := len(s.Touches) > 0 || len(p.prev.Touches) > 0
	if touching {
		p.diffTouches(s)
	} else {
		p.diffMouse(s)
	}

	if s.Wheel != 0 {
		p.emit(RawEvent{Kind: Wheel, Position: At(s.Mouse.X, s.Mouse.Y), DeltaY: s.Wheel, DeltaMode: s.WheelMode, Time: s.Time})
	}

	p.prev = s
	p.prev.Touches = append([]Touch(nil), s.Touches...)
}

func (p *Poller) diffMouse(s DeviceState) {
	pos := At(s.Mouse.X, s.Mouse.Y)
	if s.Mouse != p.prev.Mouse {
		p.emit(RawEvent{Kind: PointerMove, Position: pos, Time: s.Time})
	}

	if !p.down {
		for b := ButtonLeft; b <= ButtonMiddle; b++ {
			if s.Buttons[b] && !p.prev.Buttons[b] {
				p.down = true
				p.button = b
				p.emit(RawEvent{Kind: PointerDown, Position: pos, Button: b, Time: s.Time})
				break
			}
		}
		return
	}

	if !s.Buttons[p.button] {
		p.down = false
		p.emit(RawEvent{Kind: PointerUp, Position: pos, Button: p.button, Time: s.Time})
	}
}

func (p *Poller) diffTouches(s DeviceState) {
	prev := make(map[int]geometry.Point, len(p.prev.Touches))
	for _, t := range p.prev.Touches {
		prev[t.ID] = t.Position
	}

	var started, moved []Touch
	current := make(map[int]bool, len(s.Touches))
	for _, t := range s.Touches {
		current[t.ID] = true
		old, ok := prev[t.ID]
		switch {
		case !ok:
			started = append(started, t)
		case old != t.Position:
			moved = append(moved, t)
		}
	}

	var ended []Touch
	for _, t := range p.prev.Touches {
		if !current[t.ID] {
			ended = append(ended, t)
		}
	}

	if len(ended) > 0 {
		p.emit(RawEvent{Kind: TouchEnd, Touches: ended, Time: s.Time})
	}
	if len(moved) > 0 {
		p.emit(RawEvent{Kind: TouchMove, Touches: moved, Time: s.Time})
	}
	if len(started) > 0 {
		p.emit(RawEvent{Kind: TouchStart, Touches: started, Time: s.Time})
	}
}

func (p *Poller) emit(ev RawEvent) {
	if p.handler != nil {
		p.handler(ev)
	}
}
