package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// EnvPrefix is prepended to environment overrides, e.g. GOPLANE_VIEWPORT_ZOOM
const EnvPrefix = "GOPLANE"

// ErrUnsupportedFormat is returned for config files viper cannot decode
var ErrUnsupportedFormat = errors.New("unsupported config format")

var supportedExts = map[string]bool{".yaml": true, ".yml": true, ".json": true, ".toml": true}

// Config is the complete application configuration
type Config struct {
	Viewport    ViewportConfig    `mapstructure:"viewport" yaml:"viewport"`
	Gesture     GestureConfig     `mapstructure:"gesture" yaml:"gesture"`
	Grid        GridConfig        `mapstructure:"grid" yaml:"grid"`
	Measurement MeasurementConfig `mapstructure:"measurement" yaml:"measurement"`
	Window      WindowConfig      `mapstructure:"window" yaml:"window"`
	Log         LoggerConfig      `mapstructure:"log" yaml:"log"`
}

type ViewportConfig struct {
	Zoom        float64 `mapstructure:"zoom" yaml:"zoom"`
	MinZoom     float64 `mapstructure:"min_zoom" yaml:"min_zoom"`
	MaxZoom     float64 `mapstructure:"max_zoom" yaml:"max_zoom"`
	CenterX     float64 `mapstructure:"center_x" yaml:"center_x"`
	CenterY     float64 `mapstructure:"center_y" yaml:"center_y"`
	Mode        string  `mapstructure:"mode" yaml:"mode"`
	ZoomEnabled bool    `mapstructure:"zoom_enabled" yaml:"zoom_enabled"`
	ZoomStep    float64 `mapstructure:"zoom_step" yaml:"zoom_step"`

	// BoundToContent keeps the view center over the scene when Bounds is off
	BoundToContent bool         `mapstructure:"bound_to_content" yaml:"bound_to_content"`
	Bounds         BoundsConfig `mapstructure:"bounds" yaml:"bounds"`
}

// BoundsConfig is the world rectangle the view center may be dragged in
type BoundsConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	MinX    float64 `mapstructure:"min_x" yaml:"min_x"`
	MinY    float64 `mapstructure:"min_y" yaml:"min_y"`
	MaxX    float64 `mapstructure:"max_x" yaml:"max_x"`
	MaxY    float64 `mapstructure:"max_y" yaml:"max_y"`
}

// Rect returns the bounds, or nil when they are disabled
func (b BoundsConfig) Rect() *geometry.Rect {
	if !b.Enabled {
		return nil
	}
	r := geometry.NewRect(geometry.NewPoint(b.MinX, b.MinY), geometry.NewPoint(b.MaxX, b.MaxY))
	return &r
}

type GestureConfig struct {
	Friction        float64 `mapstructure:"friction" yaml:"friction"`
	Multiplier      float64 `mapstructure:"multiplier" yaml:"multiplier"`
	Bounce          bool    `mapstructure:"bounce" yaml:"bounce"`
	WheelLineHeight float64 `mapstructure:"wheel_line_height" yaml:"wheel_line_height"`
	PinchMultiplier float64 `mapstructure:"pinch_multiplier" yaml:"pinch_multiplier"`
	ClickSlop       float64 `mapstructure:"click_slop" yaml:"click_slop"`
}

type GridConfig struct {
	Visible    bool    `mapstructure:"visible" yaml:"visible"`
	Spacing    float64 `mapstructure:"spacing" yaml:"spacing"`
	Color      string  `mapstructure:"color" yaml:"color"`
	Opacity    float64 `mapstructure:"opacity" yaml:"opacity"`
	AxisColor  string  `mapstructure:"axis_color" yaml:"axis_color"`
	AxisWidth  float64 `mapstructure:"axis_width" yaml:"axis_width"`
	LineWidth  float64 `mapstructure:"line_width" yaml:"line_width"`
	ShowLabels bool    `mapstructure:"show_labels" yaml:"show_labels"`
	FontSize   float64 `mapstructure:"font_size" yaml:"font_size"`
	TickSize   float64 `mapstructure:"tick_size" yaml:"tick_size"`
	LabelColor string  `mapstructure:"label_color" yaml:"label_color"`
}

type MeasurementConfig struct {
	Unit        string  `mapstructure:"unit" yaml:"unit"`
	UnitScale   float64 `mapstructure:"unit_scale" yaml:"unit_scale"`
	Precision   int     `mapstructure:"precision" yaml:"precision"`
	LineColor   string  `mapstructure:"line_color" yaml:"line_color"`
	LineWidth   float64 `mapstructure:"line_width" yaml:"line_width"`
	LabelColor  string  `mapstructure:"label_color" yaml:"label_color"`
	LabelSize   float64 `mapstructure:"label_size" yaml:"label_size"`
	LabelOffset float64 `mapstructure:"label_offset" yaml:"label_offset"`
	ShowLabels  bool    `mapstructure:"show_labels" yaml:"show_labels"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Title  string `mapstructure:"title" yaml:"title"`
}

// LoggerConfig configures internal/logging
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	// -- Viewport --
	v.SetDefault("viewport.zoom", viewport.DefaultZoom)
	v.SetDefault("viewport.min_zoom", viewport.DefaultMinZoom)
	v.SetDefault("viewport.max_zoom", viewport.DefaultMaxZoom)
	v.SetDefault("viewport.center_x", 0.0)
	v.SetDefault("viewport.center_y", 0.0)
	v.SetDefault("viewport.mode", viewport.ModeSelect.String())
	v.SetDefault("viewport.zoom_enabled", true)
	v.SetDefault("viewport.zoom_step", viewport.DefaultZoomStep)
	v.SetDefault("viewport.bound_to_content", false)
	v.SetDefault("viewport.bounds.enabled", false)
	v.SetDefault("viewport.bounds.min_x", 0.0)
	v.SetDefault("viewport.bounds.min_y", 0.0)
	v.SetDefault("viewport.bounds.max_x", 0.0)
	v.SetDefault("viewport.bounds.max_y", 0.0)

	// -- Gesture --
	v.SetDefault("gesture.friction", gesture.DefaultFriction)
	v.SetDefault("gesture.multiplier", gesture.DefaultMultiplier)
	v.SetDefault("gesture.bounce", true)
	v.SetDefault("gesture.wheel_line_height", gesture.DefaultWheelLineHeight)
	v.SetDefault("gesture.pinch_multiplier", gesture.DefaultPinchMultiplier)
	v.SetDefault("gesture.click_slop", gesture.DefaultClickSlop)

	// -- Grid --
	v.SetDefault("grid.visible", true)
	v.SetDefault("grid.spacing", grid.DefaultSpacing)
	v.SetDefault("grid.color", grid.DefaultColor)
	v.SetDefault("grid.opacity", grid.DefaultOpacity)
	v.SetDefault("grid.axis_color", grid.DefaultAxisColor)
	v.SetDefault("grid.axis_width", grid.DefaultAxisWidth)
	v.SetDefault("grid.line_width", grid.DefaultLineWidth)
	v.SetDefault("grid.show_labels", true)
	v.SetDefault("grid.font_size", grid.DefaultFontSize)
	v.SetDefault("grid.tick_size", grid.DefaultTickSize)
	v.SetDefault("grid.label_color", grid.DefaultLabelColor)

	// -- Measurement --
	v.SetDefault("measurement.unit", measurement.DefaultUnit)
	v.SetDefault("measurement.unit_scale", measurement.DefaultUnitScale)
	v.SetDefault("measurement.precision", measurement.DefaultPrecision)
	v.SetDefault("measurement.line_color", measurement.DefaultLineColor)
	v.SetDefault("measurement.line_width", measurement.DefaultLineWidth)
	v.SetDefault("measurement.label_color", measurement.DefaultLabelColor)
	v.SetDefault("measurement.label_size", measurement.DefaultLabelSize)
	v.SetDefault("measurement.label_offset", measurement.DefaultLabelOffset)
	v.SetDefault("measurement.show_labels", true)

	// -- Window --
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "goplane")

	// -- Log --
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// NewViper returns a viper instance with defaults and environment overrides
// registered
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the configuration made of defaults only
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// FromViper decodes and normalizes the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Load reads the config file at path, or the first one found in the search
// path when path is empty. A missing file in the search path is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		if !supportedExts[ext] {
			return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return FromViper(v)
	}

	v.SetConfigName("goplane")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "goplane"))
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return FromViper(v)
}

// StatePath returns the per-user file the viewport state is kept in, next to
// the user config file
func StatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "goplane", "state.yaml")
}

// Reload re-reads the file viper was loaded from
func Reload(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() == "" {
		return FromViper(v)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to reload config %s: %w", v.ConfigFileUsed(), err)
	}
	return FromViper(v)
}

// Normalize silently corrects out-of-range values and returns the keys it
// changed
func (c *Config) Normalize() []string {
	var fixed []string
	vp := &c.Viewport
	if vp.MinZoom <= 0 || math.IsNaN(vp.MinZoom) {
		vp.MinZoom = viewport.DefaultMinZoom
		fixed = append(fixed, "viewport.min_zoom")
	}
	if vp.MaxZoom <= 0 || math.IsNaN(vp.MaxZoom) {
		vp.MaxZoom = viewport.DefaultMaxZoom
		fixed = append(fixed, "viewport.max_zoom")
	}
	if vp.MaxZoom < vp.MinZoom {
		vp.MinZoom, vp.MaxZoom = vp.MaxZoom, vp.MinZoom
		fixed = append(fixed, "viewport.max_zoom")
	}
	if vp.Zoom <= 0 || math.IsNaN(vp.Zoom) {
		vp.Zoom = viewport.DefaultZoom
		fixed = append(fixed, "viewport.zoom")
	}
	if z := math.Max(vp.MinZoom, math.Min(vp.MaxZoom, vp.Zoom)); z != vp.Zoom {
		vp.Zoom = z
		fixed = append(fixed, "viewport.zoom")
	}
	if _, err := viewport.ParseMode(vp.Mode); err != nil {
		vp.Mode = viewport.ModeSelect.String()
		fixed = append(fixed, "viewport.mode")
	}
	if vp.ZoomStep <= 0 {
		vp.ZoomStep = viewport.DefaultZoomStep
		fixed = append(fixed, "viewport.zoom_step")
	}

	g := &c.Gesture
	if g.Friction <= 0 || g.Friction >= 1 {
		g.Friction = gesture.DefaultFriction
		fixed = append(fixed, "gesture.friction")
	}
	if g.Multiplier <= 0 {
		g.Multiplier = gesture.DefaultMultiplier
		fixed = append(fixed, "gesture.multiplier")
	}

	if c.Grid.Spacing <= 0 {
		c.Grid.Spacing = grid.DefaultSpacing
		fixed = append(fixed, "grid.spacing")
	}
	if c.Grid.Opacity < 0 || c.Grid.Opacity > 1 {
		c.Grid.Opacity = grid.DefaultOpacity
		fixed = append(fixed, "grid.opacity")
	}

	if c.Measurement.Precision < 0 {
		c.Measurement.Precision = 0
		fixed = append(fixed, "measurement.precision")
	}
	if c.Measurement.Precision > measurement.MaxPrecision {
		c.Measurement.Precision = measurement.MaxPrecision
		fixed = append(fixed, "measurement.precision")
	}
	if c.Measurement.UnitScale <= 0 {
		c.Measurement.UnitScale = measurement.DefaultUnitScale
		fixed = append(fixed, "measurement.unit_scale")
	}

	if c.Window.Width <= 0 {
		c.Window.Width = 1024
		fixed = append(fixed, "window.width")
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 768
		fixed = append(fixed, "window.height")
	}
	return fixed
}

// ViewportOptions converts the viewport section
func (c *Config) ViewportOptions(logger *zap.Logger) viewport.Options {
	mode, err := viewport.ParseMode(c.Viewport.Mode)
	if err != nil {
		mode = viewport.ModeSelect
	}
	opts := viewport.DefaultOptions()
	opts.Zoom = c.Viewport.Zoom
	opts.MinZoom = c.Viewport.MinZoom
	opts.MaxZoom = c.Viewport.MaxZoom
	opts.Center = geometry.Point{X: c.Viewport.CenterX, Y: c.Viewport.CenterY}
	opts.Mode = mode
	opts.ZoomEnabled = c.Viewport.ZoomEnabled
	opts.ZoomStep = c.Viewport.ZoomStep
	opts.Logger = logger
	return opts
}

// GestureOptions converts the gesture section
func (c *Config) GestureOptions(logger *zap.Logger) gesture.Options {
	opts := gesture.DefaultOptions()
	opts.Friction = c.Gesture.Friction
	opts.Multiplier = c.Gesture.Multiplier
	opts.Bounce = c.Gesture.Bounce
	opts.WheelLineHeight = c.Gesture.WheelLineHeight
	opts.PinchMultiplier = c.Gesture.PinchMultiplier
	opts.ClickSlop = c.Gesture.ClickSlop
	opts.Logger = logger
	return opts
}

// GridOptions converts the grid section
func (c *Config) GridOptions(logger *zap.Logger) grid.Options {
	opts := grid.DefaultOptions()
	opts.Visible = c.Grid.Visible
	opts.Spacing = c.Grid.Spacing
	opts.Color = c.Grid.Color
	opts.Opacity = c.Grid.Opacity
	opts.AxisColor = c.Grid.AxisColor
	opts.AxisWidth = c.Grid.AxisWidth
	opts.LineWidth = c.Grid.LineWidth
	opts.ShowLabels = c.Grid.ShowLabels
	opts.FontSize = c.Grid.FontSize
	opts.TickSize = c.Grid.TickSize
	opts.LabelColor = c.Grid.LabelColor
	opts.Logger = logger
	return opts
}

// GridSettings returns the user-adjustable grid settings
func (c *Config) GridSettings() grid.Settings {
	return grid.Settings{
		Visible:    c.Grid.Visible,
		Spacing:    c.Grid.Spacing,
		Color:      c.Grid.Color,
		Opacity:    c.Grid.Opacity,
		AxisColor:  c.Grid.AxisColor,
		ShowLabels: c.Grid.ShowLabels,
	}
}

// MeasurementOptions converts the measurement section
func (c *Config) MeasurementOptions(logger *zap.Logger) measurement.Options {
	opts := measurement.DefaultOptions()
	opts.Unit = c.Measurement.Unit
	opts.UnitScale = c.Measurement.UnitScale
	opts.Precision = c.Measurement.Precision
	opts.LineColor = c.Measurement.LineColor
	opts.LineWidth = c.Measurement.LineWidth
	opts.LabelColor = c.Measurement.LabelColor
	opts.LabelSize = c.Measurement.LabelSize
	opts.LabelOffset = c.Measurement.LabelOffset
	opts.ShowLabels = c.Measurement.ShowLabels
	opts.Logger = logger
	return opts
}

// PlaneOptions converts every section a plane host needs
func (c *Config) PlaneOptions(logger *zap.Logger) plane.Options {
	opts := plane.DefaultOptions()
	opts.Viewport = c.ViewportOptions(logger)
	opts.Gesture = c.GestureOptions(logger)
	opts.Grid = c.GridOptions(logger)
	opts.Measurement = c.MeasurementOptions(logger)
	opts.PanBounds = c.Viewport.Bounds.Rect()
	opts.BoundToContent = c.Viewport.BoundToContent
	return opts.WithLogger(logger)
}
