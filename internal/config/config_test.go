package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/viewport"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 1.0, cfg.Viewport.Zoom)
	assert.Equal(t, 0.01, cfg.Viewport.MinZoom)
	assert.Equal(t, 20.0, cfg.Viewport.MaxZoom)
	assert.Equal(t, "select", cfg.Viewport.Mode)
	assert.Equal(t, 0.92, cfg.Gesture.Friction)
	assert.Equal(t, 20.0, cfg.Grid.Spacing)
	assert.Equal(t, "#cccccc", cfg.Grid.Color)
	assert.Equal(t, "px", cfg.Measurement.Unit)
	assert.Equal(t, 2, cfg.Measurement.Precision)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1024, cfg.Window.Width)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(c *Config)
		check func(t *testing.T, c *Config)
		key   string
	}{
		{
			name:  "non-positive min zoom",
			edit:  func(c *Config) { c.Viewport.MinZoom = 0 },
			check: func(t *testing.T, c *Config) { assert.Equal(t, 0.01, c.Viewport.MinZoom) },
			key:   "viewport.min_zoom",
		},
		{
			name: "swapped zoom limits",
			edit: func(c *Config) { c.Viewport.MinZoom, c.Viewport.MaxZoom = 5, 2 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 2.0, c.Viewport.MinZoom)
				assert.Equal(t, 5.0, c.Viewport.MaxZoom)
				assert.Equal(t, 2.0, c.Viewport.Zoom)
			},
			key: "viewport.max_zoom",
		},
		{
			name:  "zoom above max",
			edit:  func(c *Config) { c.Viewport.Zoom = 50 },
			check: func(t *testing.T, c *Config) { assert.Equal(t, 20.0, c.Viewport.Zoom) },
			key:   "viewport.zoom",
		},
		{
			name:  "unknown mode",
			edit:  func(c *Config) { c.Viewport.Mode = "lasso" },
			check: func(t *testing.T, c *Config) { assert.Equal(t, "select", c.Viewport.Mode) },
			key:   "viewport.mode",
		},
		{
			name:  "friction out of range",
			edit:  func(c *Config) { c.Gesture.Friction = 1.5 },
			check: func(t *testing.T, c *Config) { assert.Equal(t, 0.92, c.Gesture.Friction) },
			key:   "gesture.friction",
		},
		{
			name:  "negative precision",
			edit:  func(c *Config) { c.Measurement.Precision = -3 },
			check: func(t *testing.T, c *Config) { assert.Equal(t, 0, c.Measurement.Precision) },
			key:   "measurement.precision",
		},
		{
			name:  "precision beyond float64",
			edit:  func(c *Config) { c.Measurement.Precision = 400 },
			check: func(t *testing.T, c *Config) { assert.Equal(t, 15, c.Measurement.Precision) },
			key:   "measurement.precision",
		},
		{
			name:  "zero spacing",
			edit:  func(c *Config) { c.Grid.Spacing = 0 },
			check: func(t *testing.T, c *Config) { assert.Equal(t, 20.0, c.Grid.Spacing) },
			key:   "grid.spacing",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.edit(cfg)
			fixed := cfg.Normalize()
			assert.Contains(t, fixed, tc.key)
			tc.check(t, cfg)
		})
	}

	t.Run("defaults need no correction", func(t *testing.T) {
		cfg := NewDefaultConfig()
		assert.Empty(t, cfg.Normalize())
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goplane.yaml")
	content := `
viewport:
  zoom: 2.5
  mode: measure
grid:
  spacing: 40
  color: "#112233"
measurement:
  unit: mm
  unit_scale: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Viewport.Zoom)
	assert.Equal(t, "measure", cfg.Viewport.Mode)
	assert.Equal(t, 40.0, cfg.Grid.Spacing)
	assert.Equal(t, "#112233", cfg.Grid.Color)
	assert.Equal(t, "mm", cfg.Measurement.Unit)
	// untouched keys keep their defaults
	assert.Equal(t, 0.5, cfg.Grid.Opacity)
	assert.True(t, cfg.Grid.ShowLabels)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(NewViper(), "settings.ini")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(NewViper(), filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("viewport: [zoom"), 0o644))
		_, err := Load(NewViper(), path)
		assert.Error(t, err)
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GOPLANE_VIEWPORT_ZOOM", "3")
	t.Setenv("GOPLANE_GRID_SPACING", "32")

	cfg, err := FromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Viewport.Zoom)
	assert.Equal(t, 32.0, cfg.Grid.Spacing)
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goplane.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  spacing: 30\n"), 0o644))

	v := NewViper()
	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.Grid.Spacing)

	require.NoError(t, os.WriteFile(path, []byte("grid:\n  spacing: 60\n"), 0o644))
	cfg, err = Reload(v)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Grid.Spacing)
}

func TestReloadWithoutFile(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Reload(v)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Grid.Spacing)
}

func TestOptionConversion(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Viewport.Mode = "grab"
	cfg.Viewport.CenterX = 10
	cfg.Viewport.CenterY = -4
	cfg.Gesture.Bounce = false
	cfg.Measurement.Unit = "cm"

	vo := cfg.ViewportOptions(nil)
	assert.Equal(t, viewport.ModeGrab, vo.Mode)
	assert.Equal(t, 10.0, vo.Center.X)
	assert.Equal(t, -4.0, vo.Center.Y)

	gopts := cfg.GestureOptions(nil)
	assert.False(t, gopts.Bounce)
	assert.Equal(t, 0.92, gopts.Friction)

	gr := cfg.GridOptions(nil)
	assert.Equal(t, "#999999", gr.AxisColor)
	assert.Equal(t, cfg.Grid.Spacing, cfg.GridSettings().Spacing)

	mo := cfg.MeasurementOptions(nil)
	assert.Equal(t, "cm", mo.Unit)
	assert.Equal(t, 2, mo.Precision)

	po := cfg.PlaneOptions(nil)
	assert.Equal(t, viewport.ModeGrab, po.Viewport.Mode)
	assert.Equal(t, "cm", po.Measurement.Unit)
	assert.NotNil(t, po.Logger)
	assert.NotNil(t, po.Grid.Logger)
	assert.Nil(t, po.PanBounds)
	assert.False(t, po.BoundToContent)

	cfg.Viewport.Bounds = BoundsConfig{Enabled: true, MinX: 100, MinY: -20, MaxX: -100, MaxY: 20}
	cfg.Viewport.BoundToContent = true
	po = cfg.PlaneOptions(nil)
	require.NotNil(t, po.PanBounds)
	assert.Equal(t, geometry.NewPoint(-100, -20), po.PanBounds.Min)
	assert.Equal(t, geometry.NewPoint(100, 20), po.PanBounds.Max)
	assert.True(t, po.BoundToContent)
}

func TestStatePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".config", "goplane", "state.yaml"), StatePath())
}
