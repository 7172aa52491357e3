package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

func newTarget() Target {
	c := viewport.NewController(frame.NewQueue(), viewport.DefaultOptions())
	c.Resize(800, 600)
	return Target{
		Controller: c,
		Grid:       grid.NewRenderer(surface.NewRecorder(800, 600), grid.DefaultOptions()),
		Tool:       measurement.NewTool(measurement.DefaultOptions()),
	}
}

func TestForKey(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"Escape", Cancel},
		{"S", SelectMode},
		{"g", GrabMode},
		{"M", MeasureMode},
		{"D", DrawMode},
		{"=", ZoomIn},
		{"+", ZoomIn},
		{"-", ZoomOut},
		{"F", Fit},
		{"0", Reset},
		{"Home", Reset},
		{"L", ToggleGrid},
		{"C", ClearMeasurements},
		{"Q", None},
		{"", None},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ForKey(tt.key))
		})
	}
}

func TestModeActions(t *testing.T) {
	target := newTarget()
	c := target.Controller

	assert.True(t, target.Apply(GrabMode))
	assert.Equal(t, viewport.ModeGrab, c.Mode())
	target.Apply(MeasureMode)
	assert.Equal(t, viewport.ModeMeasure, c.Mode())
	target.Apply(DrawMode)
	assert.Equal(t, viewport.ModeDraw, c.Mode())
	target.Apply(SelectMode)
	assert.Equal(t, viewport.ModeSelect, c.Mode())
}

func TestZoomAndReset(t *testing.T) {
	target := newTarget()
	c := target.Controller

	target.Apply(ZoomIn)
	assert.InDelta(t, 1.5, c.Zoom(), 1e-9)
	target.Apply(ZoomOut)
	target.Apply(ZoomOut)
	assert.InDelta(t, 0.5, c.Zoom(), 1e-9)

	c.PanTo(40, 50)
	target.Apply(Reset)
	assert.Equal(t, 1.0, c.Zoom())
	assert.Equal(t, geometry.Point{}, c.Center())
}

func TestFitUsesContent(t *testing.T) {
	target := newTarget()
	s := scene.New("fit")
	s.AddMarker(scene.Marker{Position: geometry.NewPoint(100, 100)})
	s.AddMarker(scene.Marker{Position: geometry.NewPoint(300, 200)})
	target.Controller.SetContentProvider(s)

	require.True(t, target.Apply(Fit))
	assert.Equal(t, geometry.NewPoint(200, 150), target.Controller.Center())
}

func TestGridAndMeasurementActions(t *testing.T) {
	target := newTarget()

	target.Apply(ToggleGrid)
	assert.False(t, target.Grid.Settings().Visible)
	target.Apply(ToggleGrid)
	assert.True(t, target.Grid.Settings().Visible)

	target.Tool.Click(geometry.NewPoint(0, 0))
	require.Equal(t, measurement.StatePending, target.Tool.State())
	target.Apply(Cancel)
	assert.Equal(t, measurement.StateIdle, target.Tool.State())

	target.Tool.Click(geometry.NewPoint(0, 0))
	target.Tool.Click(geometry.NewPoint(3, 4))
	target.Apply(Cancel)
	require.Len(t, target.Tool.History(), 1)
	target.Apply(ClearMeasurements)
	assert.Empty(t, target.Tool.History())
}

func TestMissingCollaborators(t *testing.T) {
	target := newTarget()
	target.Grid = nil
	target.Tool = nil

	assert.False(t, target.Apply(ToggleGrid))
	assert.False(t, target.Apply(Cancel))
	assert.False(t, target.Apply(ClearMeasurements))
	assert.False(t, target.Apply(None))
	assert.Equal(t, "toggle-grid", ToggleGrid.String())
	assert.Equal(t, "unknown", Action(99).String())
}
