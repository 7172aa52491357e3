package gesture

import (
	"time"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// Kind is the type of a raw input event
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	Wheel
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel
)

// Button identifies the mouse button of a pointer event
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// WheelMode is the unit of a wheel delta
type WheelMode int

const (
	WheelPixel WheelMode = iota
	WheelLine
	WheelPage
)

// Touch is one finger in a touch event
type Touch struct {
	ID       int
	Position geometry.Point
}

// RawEvent is a device event as delivered by a host. Pointer and wheel events
// without a Position are treated as malformed and ignored.
type RawEvent struct {
	Kind      Kind
	Position  *geometry.Point
	Button    Button
	DeltaY    float64
	DeltaMode WheelMode
	Touches   []Touch // touches that changed in this event
	Time      time.Time
}

// At returns a pointer to p, for building RawEvent literals
func At(x, y float64) *geometry.Point {
	p := geometry.NewPoint(x, y)
	return &p
}

// Source delivers raw events to a single subscriber
type Source interface {
	Subscribe(handler func(RawEvent)) (unsubscribe func())
}

// Event is the normalized gesture produced by the engine. DX and DY are
// screen-space deltas since the previous event of the same drag, DZ is
// accumulated zoom intent, X and Y the cursor and X0 and Y0 the drag origin.
type Event struct {
	DX, DY, DZ float64
	X, Y       float64
	X0, Y0     float64
	IsRight    bool
	Timestamp  time.Time
}

// merge folds a later event into e
func (e *Event) merge(later Event) {
	e.DX += later.DX
	e.DY += later.DY
	e.DZ += later.DZ
	e.X = later.X
	e.Y = later.Y
	e.IsRight = later.IsRight
	e.Timestamp = later.Timestamp
}

// PointerAction is the type of a PointerEvent
type PointerAction int

const (
	ActionHover PointerAction = iota
	ActionDown
	ActionDrag
	ActionUp
	ActionClick
)

func (a PointerAction) String() string {
	switch a {
	case ActionHover:
		return "hover"
	case ActionDown:
		return "down"
	case ActionDrag:
		return "drag"
	case ActionUp:
		return "up"
	case ActionClick:
		return "click"
	default:
		return "unknown"
	}
}

// PointerEvent reports pointer activity in screen coordinates
type PointerEvent struct {
	Action  PointerAction
	X, Y    float64
	IsRight bool
}

// Stop is emitted when a drag and any momentum that followed it has ended
type Stop struct {
	X, Y float64
}
