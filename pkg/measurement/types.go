package measurement

import (
	"math"
	"strconv"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// State is the state of the measurement tool
type State int

const (
	StateIdle State = iota
	StatePending
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Measurement is a distance between two world points
type Measurement struct {
	Start     geometry.Point `yaml:"start"`
	End       geometry.Point `yaml:"end"`
	Unit      string         `yaml:"unit"`
	UnitScale float64        `yaml:"unit_scale"`
	Precision int            `yaml:"precision"`
	Completed bool           `yaml:"completed"`
}

// Distance returns the scaled distance rounded to Precision digits
func (m Measurement) Distance() float64 {
	d := m.UnitScale * m.Start.Distance(m.End)
	p := math.Pow(10, float64(clampPrecision(m.Precision)))
	return math.Round(d*p) / p
}

// Label returns the distance with its unit, e.g. "12.50 px"
func (m Measurement) Label() string {
	text := strconv.FormatFloat(m.Distance(), 'f', clampPrecision(m.Precision), 64)
	if m.Unit == "" {
		return text
	}
	return text + " " + m.Unit
}

// Midpoint returns the point halfway along the measurement
func (m Measurement) Midpoint() geometry.Point {
	return m.Start.Midpoint(m.End)
}
