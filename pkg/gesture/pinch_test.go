package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinchLog struct {
	starts  []float64
	changes []PinchChange
	lifts   []int
	ends    int
}

func observePinch(p *Pinch) *pinchLog {
	l := &pinchLog{}
	p.OnStart.On(func(d float64) { l.starts = append(l.starts, d) })
	p.OnChange.On(func(c PinchChange) { l.changes = append(l.changes, c) })
	p.OnLift.On(func(t Touch) { l.lifts = append(l.lifts, t.ID) })
	p.OnEnd.On(func(struct{}) { l.ends++ })
	return l
}

func TestPinchLifecycle(t *testing.T) {
	p := NewPinch()
	l := observePinch(p)

	p.TouchStart([]Touch{{ID: 1, Position: pt(0, 0)}, {ID: 2, Position: pt(30, 40)}})
	require.Equal(t, []float64{50}, l.starts)

	for i := 0; i < 5; i++ {
		p.TouchMove([]Touch{{ID: 2, Position: pt(30, 40+float64(i+1))}})
	}
	require.Len(t, l.changes, 5)
	assert.Equal(t, 50.0, l.changes[0].Previous)
	assert.Equal(t, l.changes[0].Current, l.changes[1].Previous)

	p.TouchEnd([]Touch{{ID: 1, Position: pt(0, 0)}})
	p.TouchEnd([]Touch{{ID: 2, Position: pt(30, 45)}})

	assert.Len(t, l.starts, 1)
	assert.Equal(t, 1, l.ends)
	assert.Equal(t, []int{1, 2}, l.lifts)
	assert.False(t, p.Pinching())
}

func TestPinchEndRequiresStart(t *testing.T) {
	p := NewPinch()
	l := observePinch(p)

	p.TouchStart([]Touch{{ID: 7, Position: pt(0, 0)}})
	p.TouchMove([]Touch{{ID: 7, Position: pt(5, 0)}})
	p.TouchEnd([]Touch{{ID: 7, Position: pt(5, 0)}})

	assert.Empty(t, l.starts)
	assert.Empty(t, l.changes)
	assert.Equal(t, 0, l.ends)
	assert.Equal(t, []int{7}, l.lifts)
}

func TestPinchIgnoresThirdFinger(t *testing.T) {
	p := NewPinch()
	l := observePinch(p)

	p.TouchStart([]Touch{{ID: 1, Position: pt(0, 0)}})
	p.TouchStart([]Touch{{ID: 2, Position: pt(10, 0)}})
	p.TouchStart([]Touch{{ID: 3, Position: pt(20, 0)}})
	require.Len(t, l.starts, 1)

	p.TouchMove([]Touch{{ID: 3, Position: pt(50, 0)}})
	assert.Empty(t, l.changes, "untracked finger must not produce changes")

	p.TouchEnd([]Touch{{ID: 3, Position: pt(50, 0)}})
	assert.True(t, p.Pinching())
	assert.Equal(t, 0, l.ends)

	mid, ok := p.Midpoint()
	require.True(t, ok)
	assert.Equal(t, pt(5, 0), mid)
}

func TestPinchRestartAfterEnd(t *testing.T) {
	p := NewPinch()
	l := observePinch(p)

	p.TouchStart([]Touch{{ID: 1, Position: pt(0, 0)}, {ID: 2, Position: pt(10, 0)}})
	p.TouchEnd([]Touch{{ID: 2, Position: pt(10, 0)}})
	p.TouchStart([]Touch{{ID: 3, Position: pt(20, 0)}})
	p.TouchEnd([]Touch{{ID: 1, Position: pt(0, 0)}, {ID: 3, Position: pt(20, 0)}})

	assert.Len(t, l.starts, 2)
	assert.Equal(t, 2, l.ends)
}
