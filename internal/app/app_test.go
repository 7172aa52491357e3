package app

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/viewport"
)

const testScene = `
name: plan
markers:
  - {x: 0, y: 0, label: origin}
  - {x: 100, y: 50}
polylines:
  - points: [{x: 0, y: 0}, {x: 100, y: 0}, {x: 100, y: 50}]
`

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	a, err := New(test.NewTempApp(t), opts)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	a.Window().Resize(fyne.NewSize(800, 600))
	return a
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewUsesConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Viewport.Zoom = 2
	cfg.Viewport.Mode = "grab"
	cfg.Window.Title = "plane"

	a := newTestApp(t, Options{Config: cfg})
	ctrl := a.Viewer().Controller()
	assert.Equal(t, 2.0, ctrl.Zoom())
	assert.Equal(t, viewport.ModeGrab, ctrl.Mode())
	assert.Equal(t, "plane", a.Window().Title())
	assert.Equal(t, "grab", a.modeSelect.Selected)
}

func TestSceneIsLoadedAndFitted(t *testing.T) {
	path := writeFile(t, "plan.yaml", testScene)
	a := newTestApp(t, Options{ScenePath: path})

	assert.Contains(t, a.Window().Title(), "plan")
	assert.Equal(t, 3, a.Viewer().Scene().Count())

	a.fit()
	center := a.Viewer().Controller().Center()
	assert.InDelta(t, 50, center.X, 1e-9)
	assert.InDelta(t, 25, center.Y, 1e-9)
}

func TestMissingSceneFails(t *testing.T) {
	_, err := New(test.NewTempApp(t), Options{ScenePath: filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)
}

func TestKeyboardShortcuts(t *testing.T) {
	a := newTestApp(t, Options{})
	ctrl := a.Viewer().Controller()

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyG})
	assert.Equal(t, viewport.ModeGrab, ctrl.Mode())
	assert.Equal(t, "grab", a.modeSelect.Selected)

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyM})
	assert.Equal(t, viewport.ModeMeasure, ctrl.Mode())

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyEqual})
	assert.Equal(t, 1.5, ctrl.Zoom())

	a.handleKey(&fyne.KeyEvent{Name: fyne.Key0})
	assert.Equal(t, 1.0, ctrl.Zoom())

	visible := a.Viewer().Grid().Settings().Visible
	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyL})
	assert.Equal(t, !visible, a.Viewer().Grid().Settings().Visible)
}

func TestModeSelectorDrivesViewport(t *testing.T) {
	a := newTestApp(t, Options{})
	a.modeSelect.SetSelected("draw")
	assert.Equal(t, viewport.ModeDraw, a.Viewer().Controller().Mode())
}

func TestStatusLine(t *testing.T) {
	a := newTestApp(t, Options{})
	a.Viewer().Controller().SetZoom(2)
	assert.Contains(t, a.StatusText(), "zoom 2.000")
	assert.Contains(t, a.StatusText(), "mode select")

	tool := a.Viewer().Measurement()
	tool.Click(geometry.NewPoint(0, 0))
	tool.Click(geometry.NewPoint(3, 4))
	assert.Contains(t, a.StatusText(), "last 5.00 px")

	a.clearMeasurements()
	assert.NotContains(t, a.StatusText(), "last")
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t, Options{})

	cfg := config.NewDefaultConfig()
	cfg.Grid.Spacing = 45
	cfg.Gesture.Friction = 0.8
	cfg.Measurement.Unit = "mm"
	cfg.Viewport.MaxZoom = 4
	a.applyConfig(cfg)

	assert.Equal(t, 45.0, a.Viewer().Grid().Settings().Spacing)
	assert.Equal(t, 0.8, a.Viewer().Engine().Options().Friction)
	assert.Equal(t, "mm", a.Viewer().Measurement().Options().Unit)
	_, maxZoom := a.Viewer().Controller().ZoomLimits()
	assert.Equal(t, 4.0, maxZoom)
}

func TestReloadConfigFromFile(t *testing.T) {
	path := writeFile(t, "goplane.yaml", "grid:\n  spacing: 30\n")
	v := config.NewViper()
	cfg, err := config.Load(v, path)
	require.NoError(t, err)

	a := newTestApp(t, Options{Config: cfg, Viper: v})
	assert.Equal(t, 30.0, a.Viewer().Grid().Settings().Spacing)

	require.NoError(t, os.WriteFile(path, []byte("grid:\n  spacing: 70\n"), 0o644))
	a.reloadConfig()
	assert.Equal(t, 70.0, a.Viewer().Grid().Settings().Spacing)
}

func TestStateIsRestoredAndSaved(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "nested", "state.yaml")

	a := newTestApp(t, Options{StatePath: statePath})
	a.Viewer().Controller().Restore(viewport.State{Center: geometry.NewPoint(5, 6), Zoom: 3, Mode: viewport.ModeGrab})
	require.NoError(t, a.saveState())

	b := newTestApp(t, Options{StatePath: statePath})
	ctrl := b.Viewer().Controller()
	assert.Equal(t, geometry.NewPoint(5, 6), ctrl.Center())
	assert.Equal(t, 3.0, ctrl.Zoom())
	assert.Equal(t, viewport.ModeGrab, ctrl.Mode())
}
