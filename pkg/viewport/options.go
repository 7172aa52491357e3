package viewport

import (
	"math"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// Defaults for a new controller
const (
	DefaultZoom     = 1.0
	DefaultMinZoom  = 0.01
	DefaultMaxZoom  = 20.0
	DefaultZoomStep = 0.5
)

// Options configures a Controller
type Options struct {
	Zoom          float64
	MinZoom       float64
	MaxZoom       float64
	Center        geometry.Point
	Mode          Mode
	ZoomEnabled   bool
	SelectEnabled bool
	ZoomStep      float64
	Logger        *zap.Logger
}

// DefaultOptions returns the default controller options
func DefaultOptions() Options {
	return Options{
		Zoom:          DefaultZoom,
		MinZoom:       DefaultMinZoom,
		MaxZoom:       DefaultMaxZoom,
		Mode:          ModeSelect,
		ZoomEnabled:   true,
		SelectEnabled: true,
		ZoomStep:      DefaultZoomStep,
	}
}

// normalize silently corrects out-of-range options and returns the names of
// the fields it changed
func (o Options) normalize() (Options, []string) {
	var fixed []string
	if o.MinZoom <= 0 || math.IsNaN(o.MinZoom) {
		o.MinZoom = DefaultMinZoom
		fixed = append(fixed, "min_zoom")
	}
	if o.MaxZoom <= 0 || math.IsNaN(o.MaxZoom) {
		o.MaxZoom = DefaultMaxZoom
		fixed = append(fixed, "max_zoom")
	}
	if o.MaxZoom < o.MinZoom {
		o.MinZoom, o.MaxZoom = o.MaxZoom, o.MinZoom
		fixed = append(fixed, "zoom_limits")
	}
	if o.Zoom <= 0 || math.IsNaN(o.Zoom) {
		o.Zoom = DefaultZoom
		fixed = append(fixed, "zoom")
	}
	if z := clamp(o.Zoom, o.MinZoom, o.MaxZoom); z != o.Zoom {
		o.Zoom = z
		fixed = append(fixed, "zoom")
	}
	if !o.Mode.Valid() {
		o.Mode = ModeSelect
		fixed = append(fixed, "mode")
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = DefaultZoomStep
		fixed = append(fixed, "zoom_step")
	}
	if !o.Center.IsFinite() {
		o.Center = geometry.Point{}
		fixed = append(fixed, "center")
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o, fixed
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}
