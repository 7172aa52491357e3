package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/pkg/geometry"
)

func collect(p *Poller) *[]RawEvent {
	events := &[]RawEvent{}
	p.Subscribe(func(ev RawEvent) { *events = append(*events, ev) })
	return events
}

func kinds(events []RawEvent) []Kind {
	out := make([]Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestPollerMouseSequence(t *testing.T) {
	p := NewPoller()
	events := collect(p)

	p.Update(DeviceState{Mouse: geometry.NewPoint(10, 10)})
	assert.Empty(t, *events, "the first snapshot only sets the baseline")

	p.Update(DeviceState{Mouse: geometry.NewPoint(10, 10), Buttons: [3]bool{true}})
	p.Update(DeviceState{Mouse: geometry.NewPoint(20, 15), Buttons: [3]bool{true}})
	p.Update(DeviceState{Mouse: geometry.NewPoint(20, 15)})

	require.Equal(t, []Kind{PointerDown, PointerMove, PointerUp}, kinds(*events))
	assert.Equal(t, geometry.NewPoint(20, 15), *(*events)[1].Position)
	assert.Equal(t, ButtonLeft, (*events)[0].Button)
}

func TestPollerRightButtonAndSecondButton(t *testing.T) {
	p := NewPoller()
	events := collect(p)

	p.Update(DeviceState{})
	p.Update(DeviceState{Buttons: [3]bool{false, true}})
	// pressing another button during the drag is ignored
	p.Update(DeviceState{Buttons: [3]bool{true, true}})
	p.Update(DeviceState{Buttons: [3]bool{true, false}})

	require.Equal(t, []Kind{PointerDown, PointerUp}, kinds(*events))
	assert.Equal(t, ButtonRight, (*events)[0].Button)
	assert.Equal(t, ButtonRight, (*events)[1].Button)
}

func TestPollerWheel(t *testing.T) {
	p := NewPoller()
	events := collect(p)

	p.Update(DeviceState{Mouse: geometry.NewPoint(5, 5), Wheel: -2, WheelMode: WheelLine})
	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, Wheel, ev.Kind)
	assert.Equal(t, -2.0, ev.DeltaY)
	assert.Equal(t, WheelLine, ev.DeltaMode)
}

func TestPollerTouches(t *testing.T) {
	p := NewPoller()
	events := collect(p)

	one := Touch{ID: 1, Position: geometry.NewPoint(0, 0)}
	two := Touch{ID: 2, Position: geometry.NewPoint(100, 0)}

	p.Update(DeviceState{})
	p.Update(DeviceState{Touches: []Touch{one}, Buttons: [3]bool{true}})
	p.Update(DeviceState{Touches: []Touch{one, two}, Buttons: [3]bool{true}})
	two.Position = geometry.NewPoint(120, 0)
	p.Update(DeviceState{Touches: []Touch{one, two}, Buttons: [3]bool{true}})
	p.Update(DeviceState{Touches: []Touch{two}})
	p.Update(DeviceState{})

	assert.Equal(t, []Kind{TouchStart, TouchStart, TouchMove, TouchEnd, TouchEnd}, kinds(*events))
	assert.Equal(t, 1, (*events)[0].Touches[0].ID)
	assert.Equal(t, 2, (*events)[2].Touches[0].ID)
	assert.Equal(t, 1, (*events)[3].Touches[0].ID)
	assert.Equal(t, 2, (*events)[4].Touches[0].ID)
}

func TestPollerDrivesPinch(t *testing.T) {
	e, q, clock, rec := newTestEngine(DefaultOptions())
	p := NewPoller()
	p.Subscribe(e.Handle)

	p.Update(DeviceState{})
	p.Update(DeviceState{Touches: []Touch{{ID: 1, Position: geometry.NewPoint(100, 100)}, {ID: 2, Position: geometry.NewPoint(200, 100)}}})
	p.Update(DeviceState{Touches: []Touch{{ID: 1, Position: geometry.NewPoint(80, 100)}, {ID: 2, Position: geometry.NewPoint(220, 100)}}})
	runUntilIdle(q, clock, 10)

	require.NotEmpty(t, rec.gestures)
	assert.Less(t, rec.gestures[len(rec.gestures)-1].DZ, 0.0, "spreading the fingers zooms in")
	assert.True(t, e.Pinch().Pinching())
}
