package measurement

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

func pt(x, y float64) geometry.Point {
	return geometry.NewPoint(x, y)
}

func TestStateMachine(t *testing.T) {
	tool := NewTool(DefaultOptions())
	var completed []Measurement
	tool.OnComplete.On(func(m Measurement) { completed = append(completed, m) })

	assert.Equal(t, StateIdle, tool.State())
	tool.Move(pt(1, 1))
	_, ok := tool.Current()
	assert.False(t, ok, "moves while idle are ignored")

	tool.Click(pt(0, 0))
	assert.Equal(t, StatePending, tool.State())
	m, ok := tool.Current()
	require.True(t, ok)
	assert.Equal(t, m.Start, m.End)

	tool.Move(pt(3, 0))
	tool.Move(pt(3, 4))
	m, _ = tool.Current()
	assert.Equal(t, pt(3, 4), m.End)

	tool.Click(pt(6, 8))
	assert.Equal(t, StateComplete, tool.State())
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Completed)
	assert.Equal(t, 10.0, completed[0].Distance())

	tool.Move(pt(100, 100))
	m, _ = tool.Current()
	assert.Equal(t, pt(6, 8), m.End, "completed measurements do not follow the pointer")
}

func TestCompleteIsNoopWhenIdleOrComplete(t *testing.T) {
	tool := NewTool(DefaultOptions())
	count := 0
	tool.OnComplete.On(func(Measurement) { count++ })

	tool.Complete()
	assert.Equal(t, StateIdle, tool.State())

	tool.Click(pt(0, 0))
	tool.Complete()
	tool.Complete()
	assert.Equal(t, 1, count)
	assert.Equal(t, StateComplete, tool.State())
}

func TestClickAfterCompleteStartsNew(t *testing.T) {
	tool := NewTool(DefaultOptions())
	tool.Click(pt(0, 0))
	tool.Click(pt(1, 0))
	tool.Click(pt(5, 5))

	assert.Equal(t, StatePending, tool.State())
	history := tool.History()
	require.Len(t, history, 1)
	assert.Equal(t, pt(1, 0), history[0].End)
}

func TestCancel(t *testing.T) {
	tool := NewTool(DefaultOptions())
	cancelled := 0
	tool.OnCancel.On(func(Measurement) { cancelled++ })

	tool.Click(pt(0, 0))
	tool.Cancel()
	assert.Equal(t, StateIdle, tool.State())
	assert.Equal(t, 1, cancelled)
	assert.Empty(t, tool.History())

	tool.Click(pt(0, 0))
	tool.Click(pt(2, 0))
	tool.Cancel()
	assert.Equal(t, StateIdle, tool.State())
	assert.Len(t, tool.History(), 1)

	tool.Cancel()
	tool.Clear()
	assert.Empty(t, tool.History())
}

func TestDistanceAndLabel(t *testing.T) {
	m := Measurement{Start: pt(0, 0), End: pt(1, 1), Unit: "m", UnitScale: 2, Precision: 3}
	assert.Equal(t, 2.828, m.Distance())
	assert.Equal(t, "2.828 m", m.Label())

	m.Precision = 0
	assert.Equal(t, "3 m", m.Label())

	m.Unit = ""
	assert.Equal(t, "3", m.Label())

	m.Precision = 400
	assert.False(t, math.IsNaN(m.Distance()))
	assert.InDelta(t, 2*math.Sqrt2, m.Distance(), 1e-12)
}

func TestPrecisionIsCapped(t *testing.T) {
	opts := DefaultOptions()
	opts.Precision = 1000
	tool := NewTool(opts)
	assert.Equal(t, MaxPrecision, tool.Options().Precision)

	tool.Click(pt(0, 0))
	tool.Click(pt(3, 4))
	m, _ := tool.Current()
	assert.Equal(t, 5.0, m.Distance())
}

func TestSetOptionsUpdatesMeasurements(t *testing.T) {
	tool := NewTool(DefaultOptions())
	tool.Click(pt(0, 0))
	tool.Click(pt(0, 10))

	opts := DefaultOptions()
	opts.Unit = "mm"
	opts.UnitScale = 0.5
	opts.Precision = -1
	tool.SetOptions(opts)

	m, _ := tool.Current()
	assert.Equal(t, "5 mm", m.Label())
}

func TestAttachFollowsMeasureMode(t *testing.T) {
	q := frame.NewQueue()
	c := viewport.NewController(q, viewport.DefaultOptions())
	c.Resize(200, 100)
	e := gesture.NewEngine(nil, q, gesture.DefaultOptions())
	c.Attach(e)

	tool := NewTool(DefaultOptions())
	tool.Attach(c)

	now := time.Now()
	click := func(x, y float64) {
		e.Handle(gesture.RawEvent{Kind: gesture.PointerDown, Position: gesture.At(x, y), Time: now})
		e.Handle(gesture.RawEvent{Kind: gesture.PointerUp, Position: gesture.At(x, y), Time: now})
	}

	click(100, 50)
	assert.Equal(t, StateIdle, tool.State(), "select mode does not measure")

	c.SetMode(viewport.ModeMeasure)
	click(100, 50)
	require.Equal(t, StatePending, tool.State())
	m, _ := tool.Current()
	assert.Equal(t, pt(0, 0), m.Start)

	e.Handle(gesture.RawEvent{Kind: gesture.PointerMove, Position: gesture.At(130, 10), Time: now})
	m, _ = tool.Current()
	assert.Equal(t, pt(30, 40), m.End)

	c.SetMode(viewport.ModeGrab)
	assert.Equal(t, StateIdle, tool.State(), "leaving measure mode cancels")

	tool.Detach()
	c.SetMode(viewport.ModeMeasure)
	click(10, 10)
	assert.Equal(t, StateIdle, tool.State())
}

func TestDraw(t *testing.T) {
	tool := NewTool(DefaultOptions())
	tool.Click(pt(-10, 0))
	tool.Click(pt(10, 0))

	rec := surface.NewRecorder(100, 100)
	v := viewport.View{Zoom: 2, Width: 100, Height: 100}
	tool.Draw(rec, v)

	lines := rec.Lines()
	require.Len(t, lines, 5, "segment plus two crosshair markers")
	assert.Equal(t, 30.0, lines[0].X1)
	assert.Equal(t, 70.0, lines[0].X2)
	assert.Equal(t, DefaultLineWidth, lines[0].Width)

	texts := rec.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "20.00 px", texts[0].Text)
	assert.Equal(t, 50.0, texts[0].X1)
	assert.Equal(t, 50.0-DefaultLabelOffset, texts[0].Y1, "label sits above a horizontal segment")
}
