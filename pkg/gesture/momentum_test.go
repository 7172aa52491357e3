package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
)

func pt(x, y float64) geometry.Point {
	return geometry.NewPoint(x, y)
}

func newTestMomentum(opts Options) (*Momentum, *frame.Queue, *manualClock, *int) {
	q := frame.NewQueue()
	clock := newManualClock()
	stops := 0
	m := NewMomentum(q, opts, nil, func(geometry.Point) { stops++ })
	return m, q, clock, &stops
}

func TestReleaseWithoutDragDoesNothing(t *testing.T) {
	m, q, clock, stops := newTestMomentum(DefaultOptions())

	assert.False(t, m.Release(clock.Now()))
	assert.Equal(t, 0, *stops)
	assert.Equal(t, 0, q.Pending())
}

func TestTrackingWindowDropsOldSamples(t *testing.T) {
	m, _, clock, _ := newTestMomentum(DefaultOptions())

	m.Start(pt(0, 0), clock.Now())
	clock.Advance(150 * time.Millisecond)
	m.Move(pt(1000, 0), clock.Now())
	clock.Advance(200 * time.Millisecond)
	m.Move(pt(1001, 0), clock.Now())

	require.Len(t, m.tracking, 1, "samples older than the window are discarded")
	assert.False(t, m.Release(clock.Now()), "slow final motion must not start momentum")
}

func TestBounceReturnsInsideBounds(t *testing.T) {
	opts := DefaultOptions()
	bounds := geometry.NewRect(pt(-50, -50), pt(50, 50))
	opts.Bounds = &bounds
	m, q, clock, stops := newTestMomentum(opts)

	m.SetPosition(pt(200, 0))
	m.Start(pt(0, 0), clock.Now())
	require.True(t, m.Release(clock.Now()), "out of bounds release animates")

	runUntilIdle(q, clock, 2000)

	assert.Equal(t, 1, *stops)
	pos := m.Position()
	assert.True(t, bounds.Contains(pos), "final position %v should be inside bounds", pos)
}

func TestNoBounceClampsToBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounce = false
	bounds := geometry.NewRect(pt(-50, -50), pt(50, 50))
	opts.Bounds = &bounds
	m, q, clock, stops := newTestMomentum(opts)

	m.SetPosition(pt(200, -80))
	m.Start(pt(0, 0), clock.Now())
	require.True(t, m.Release(clock.Now()))

	runUntilIdle(q, clock, 10)

	assert.Equal(t, 1, *stops)
	assert.Equal(t, pt(50, -50), m.Position())
}

func TestDragOutOfBoundsIsDamped(t *testing.T) {
	opts := DefaultOptions()
	bounds := geometry.NewRect(pt(0, 0), pt(0, 0))
	opts.Bounds = &bounds
	m, _, clock, _ := newTestMomentum(opts)

	m.SetPosition(pt(1000, 0))
	m.Start(pt(0, 0), clock.Now())
	clock.Advance(10 * time.Millisecond)
	m.Move(pt(100, 0), clock.Now())

	moved := m.Position().X - 1000
	assert.InDelta(t, 100/(0.000005*1000*1000+1), moved, 1e-9)
}

func TestRebound(t *testing.T) {
	assert.Equal(t, 3.0, rebound(0, 3))
	assert.InDelta(t, 2+(-10*0.04), rebound(-10, 2), 1e-12, "moving further out decelerates")
	assert.InDelta(t, (-10-2.5)*0.11, rebound(-10, -2), 1e-12, "moving back in accelerates")
	assert.InDelta(t, (10+2.5)*0.11, rebound(10, 1), 1e-12)
}
