// Package measurement implements a two-click distance measurement on top of
// a viewport.
package measurement

import (
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// Tool runs the IDLE → PENDING → COMPLETE measurement state machine
type Tool struct {
	opts    Options
	log     *zap.Logger
	state   State
	current Measurement
	history []Measurement
	subs    []*event.Subscription

	OnStart    event.Signal[Measurement]
	OnUpdate   event.Signal[Measurement]
	OnComplete event.Signal[Measurement]
	OnCancel   event.Signal[Measurement]
}

// NewTool creates an idle tool
func NewTool(opts Options) *Tool {
	opts = opts.normalize()
	return &Tool{
		opts: opts,
		log:  opts.Logger.Named("measurement"),
	}
}

// State returns the current state
func (t *Tool) State() State {
	return t.state
}

// Current returns the measurement in progress or just completed
func (t *Tool) Current() (Measurement, bool) {
	if t.state == StateIdle {
		return Measurement{}, false
	}
	return t.current, true
}

// History returns earlier completed measurements, oldest first
func (t *Tool) History() []Measurement {
	out := make([]Measurement, len(t.history))
	copy(out, t.history)
	return out
}

// Options returns the current options
func (t *Tool) Options() Options {
	return t.opts
}

// SetOptions changes units and styling. Existing measurements take the new
// unit, scale and precision.
func (t *Tool) SetOptions(opts Options) {
	opts.Logger = t.opts.Logger
	t.opts = opts.normalize()
	t.current = t.apply(t.current)
	for i := range t.history {
		t.history[i] = t.apply(t.history[i])
	}
	if t.state != StateIdle {
		t.OnUpdate.Emit(t.current)
	}
}

func (t *Tool) apply(m Measurement) Measurement {
	m.Unit = t.opts.Unit
	m.UnitScale = t.opts.UnitScale
	m.Precision = t.opts.Precision
	return m
}

// Click handles a click at a world position
func (t *Tool) Click(p geometry.Point) {
	switch t.state {
	case StateIdle:
		t.begin(p)
	case StatePending:
		t.current.End = p
		t.Complete()
	case StateComplete:
		t.archive()
		t.begin(p)
	}
}

// Move updates the end point of a pending measurement
func (t *Tool) Move(p geometry.Point) {
	if t.state != StatePending {
		return
	}
	t.current.End = p
	t.OnUpdate.Emit(t.current)
}

// Complete freezes a pending measurement. It does nothing in any other state.
func (t *Tool) Complete() {
	if t.state != StatePending {
		return
	}
	t.current.Completed = true
	t.state = StateComplete
	t.log.Debug("measurement completed", zap.String("distance", t.current.Label()))
	t.OnComplete.Emit(t.current)
}

// Cancel discards a pending measurement and returns to idle. A completed
// measurement is kept in the history.
func (t *Tool) Cancel() {
	switch t.state {
	case StatePending:
		cancelled := t.current
		t.current = Measurement{}
		t.state = StateIdle
		t.OnCancel.Emit(cancelled)
	case StateComplete:
		t.archive()
		t.state = StateIdle
	}
}

// Clear forgets all measurements
func (t *Tool) Clear() {
	t.history = nil
	t.current = Measurement{}
	t.state = StateIdle
}

func (t *Tool) begin(p geometry.Point) {
	t.current = t.apply(Measurement{Start: p, End: p})
	t.state = StatePending
	t.log.Debug("measurement started", zap.Float64("x", p.X), zap.Float64("y", p.Y))
	t.OnStart.Emit(t.current)
}

func (t *Tool) archive() {
	t.history = append(t.history, t.current)
	t.current = Measurement{}
}

// Attach feeds the tool with the viewport's pointer events while the
// viewport is in measure mode. Leaving measure mode cancels a pending
// measurement.
func (t *Tool) Attach(c *viewport.Controller) {
	t.Detach()
	t.subs = []*event.Subscription{
		c.OnPointer.On(func(ev viewport.PointerEvent) {
			if ev.Mode != viewport.ModeMeasure || ev.IsRight {
				return
			}
			switch ev.Action {
			case gesture.ActionClick:
				t.Click(ev.World)
			case gesture.ActionHover, gesture.ActionDrag:
				t.Move(ev.World)
			}
		}),
		c.OnModeChanged.On(func(m viewport.ModeChange) {
			if m.From == viewport.ModeMeasure && t.state == StatePending {
				t.Cancel()
			}
		}),
	}
}

// Detach stops listening to the viewport
func (t *Tool) Detach() {
	for _, sub := range t.subs {
		sub.Off()
	}
	t.subs = nil
}
