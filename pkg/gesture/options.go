package gesture

import (
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// Physics constants for momentum and elastic bounds
const (
	DefaultFriction        = 0.92
	DefaultMultiplier      = 1.0
	DefaultWheelLineHeight = 16.0
	DefaultPinchMultiplier = 2.0
	DefaultClickSlop       = 5.0

	trackingWindow     = 100 * time.Millisecond
	frameDuration      = 15.0 // ms per nominal frame in the velocity estimate
	startVelocity      = 1.0
	stopThresholdRatio = 0.3
	bounceDeceleration = 0.04
	bounceAcceleration = 0.11
	reboundAdjust      = 2.5
	dragResistance     = 0.000005
)

// Options configures an Engine
type Options struct {
	Friction        float64
	Multiplier      float64
	Bounce          bool
	Bounds          *geometry.Rect // limits on the virtual drag position, nil for none
	WheelLineHeight float64
	PinchMultiplier float64
	ClickSlop       float64
	Clock           func() time.Time
	Logger          *zap.Logger
}

// DefaultOptions returns the default engine options
func DefaultOptions() Options {
	return Options{
		Friction:        DefaultFriction,
		Multiplier:      DefaultMultiplier,
		Bounce:          true,
		WheelLineHeight: DefaultWheelLineHeight,
		PinchMultiplier: DefaultPinchMultiplier,
		ClickSlop:       DefaultClickSlop,
	}
}

// normalize replaces out-of-range values with defaults
func (o Options) normalize() Options {
	if o.Friction <= 0 || o.Friction >= 1 {
		o.Friction = DefaultFriction
	}
	if o.Multiplier <= 0 {
		o.Multiplier = DefaultMultiplier
	}
	if o.WheelLineHeight <= 0 {
		o.WheelLineHeight = DefaultWheelLineHeight
	}
	if o.PinchMultiplier <= 0 {
		o.PinchMultiplier = DefaultPinchMultiplier
	}
	if o.ClickSlop < 0 {
		o.ClickSlop = DefaultClickSlop
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Bounds != nil {
		b := geometry.NewRect(o.Bounds.Min, o.Bounds.Max)
		o.Bounds = &b
	}
	return o
}
