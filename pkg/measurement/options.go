package measurement

import (
	"math"

	"go.uber.org/zap"
)

// Defaults for a new tool
const (
	DefaultUnit        = "px"
	DefaultUnitScale   = 1.0
	DefaultPrecision   = 2
	DefaultLineColor   = "#ff0000"
	DefaultLineWidth   = 2.0
	DefaultLabelColor  = "#000000"
	DefaultLabelSize   = 12.0
	DefaultLabelOffset = 10.0
	DefaultMarkerSize  = 4.0

	// MaxPrecision is the most decimals a float64 distance can carry
	MaxPrecision = 15
)

// Options configures a Tool
type Options struct {
	Unit        string
	UnitScale   float64
	Precision   int
	LineColor   string
	LineWidth   float64
	LabelColor  string
	LabelSize   float64
	LabelOffset float64
	ShowLabels  bool
	MarkerSize  float64
	Logger      *zap.Logger
}

// DefaultOptions returns the default tool options
func DefaultOptions() Options {
	return Options{
		Unit:        DefaultUnit,
		UnitScale:   DefaultUnitScale,
		Precision:   DefaultPrecision,
		LineColor:   DefaultLineColor,
		LineWidth:   DefaultLineWidth,
		LabelColor:  DefaultLabelColor,
		LabelSize:   DefaultLabelSize,
		LabelOffset: DefaultLabelOffset,
		ShowLabels:  true,
		MarkerSize:  DefaultMarkerSize,
	}
}

func (o Options) normalize() Options {
	if o.UnitScale <= 0 || math.IsNaN(o.UnitScale) {
		o.UnitScale = DefaultUnitScale
	}
	o.Precision = clampPrecision(o.Precision)
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.LabelSize <= 0 {
		o.LabelSize = DefaultLabelSize
	}
	if o.MarkerSize < 0 {
		o.MarkerSize = DefaultMarkerSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

func clampPrecision(p int) int {
	return max(0, min(p, MaxPrecision))
}
