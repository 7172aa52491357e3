package grid

import (
	"image/color"
	"math"

	"go.uber.org/zap"
)

// Defaults for a new grid
const (
	DefaultSpacing    = 20.0
	DefaultColor      = "#cccccc"
	DefaultOpacity    = 0.5
	DefaultAxisColor  = "#999999"
	DefaultLabelColor = "#666666"
	DefaultFontSize   = 10.0
	DefaultTickSize   = 5.0
	DefaultLineWidth  = 1.0
	DefaultAxisWidth  = 1.5
	DefaultPadding    = 4.0
	DefaultLabelGap   = 3.0

	maxLinesPerAxis = 2000
)

// Axis configures one axis. Zero values mean unbounded with an origin at 0
// and evenly spaced lines.
type Axis struct {
	Min, Max  float64 // hard bounds of the visible range; both zero means unbounded
	Origin    float64
	Lines     []float64                          // explicit line values
	Generator func(s AxisState) []float64        // computes line values from the axis state
	Format    func(v float64, s AxisState) string // label text, identity by default
	Color     func(v float64, s AxisState) color.Color
}

func (a Axis) bounds() (float64, float64) {
	if a.Min == 0 && a.Max == 0 {
		return math.Inf(-1), math.Inf(1)
	}
	return a.Min, a.Max
}

// Options configures a Renderer
type Options struct {
	Visible    bool
	Spacing    float64 // minimum distance between lines in pixels
	Color      string
	Opacity    float64
	AxisColor  string
	AxisWidth  float64
	LineWidth  float64
	ShowLabels bool
	FontSize   float64
	TickSize   float64
	LabelColor string
	Padding    float64 // keeps labels this far from the edges
	X, Y       Axis
	Logger     *zap.Logger
}

// DefaultOptions returns the default grid options
func DefaultOptions() Options {
	return Options{
		Visible:    true,
		Spacing:    DefaultSpacing,
		Color:      DefaultColor,
		Opacity:    DefaultOpacity,
		AxisColor:  DefaultAxisColor,
		AxisWidth:  DefaultAxisWidth,
		LineWidth:  DefaultLineWidth,
		ShowLabels: true,
		FontSize:   DefaultFontSize,
		TickSize:   DefaultTickSize,
		LabelColor: DefaultLabelColor,
		Padding:    DefaultPadding,
	}
}

func (o Options) normalize() Options {
	if o.Spacing <= 0 || math.IsNaN(o.Spacing) {
		o.Spacing = DefaultSpacing
	}
	if o.Opacity < 0 || o.Opacity > 1 || math.IsNaN(o.Opacity) {
		o.Opacity = DefaultOpacity
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.AxisWidth <= 0 {
		o.AxisWidth = DefaultAxisWidth
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.TickSize < 0 {
		o.TickSize = DefaultTickSize
	}
	if o.Padding < 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Settings is the user-adjustable part of the options
type Settings struct {
	Visible    bool    `yaml:"visible"`
	Spacing    float64 `yaml:"spacing"`
	Color      string  `yaml:"color"`
	Opacity    float64 `yaml:"opacity"`
	AxisColor  string  `yaml:"axis_color"`
	ShowLabels bool    `yaml:"show_labels"`
}
