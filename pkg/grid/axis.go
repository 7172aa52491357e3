package grid

import (
	"image/color"
	"math"
	"strconv"
)

// AxisState is the layout of one axis computed for a single redraw
type AxisState struct {
	Name      string
	Size      float64 // pixels along the axis
	Zoom      float64 // world units per pixel
	Center    float64
	Range     float64 // world units visible along the axis
	Offset    float64 // world value at the start of the axis
	Origin    float64
	Step      float64
	Lines     []float64
	Colors    []color.Color // nil entries are not drawn
	Ticks     []float64     // tick length per line, zero for none
	Labels    []string      // empty entries are not drawn
	Padding   [4]float64    // top, right, bottom, left
	FontSize  float64
	TickAlign float64 // direction of ticks in screen pixels, -1 or 1
}

// Pair holds both axes of one redraw pass. Each axis is the other's opposite.
type Pair struct {
	X AxisState
	Y AxisState
}

// Opposite returns the other axis of the pair
func (p *Pair) Opposite(s *AxisState) *AxisState {
	if s == &p.X {
		return &p.Y
	}
	return &p.X
}

// Position returns the screen coordinate of a world value along the axis.
// Y positions are inverted so that larger values appear higher up.
func (s *AxisState) Position(v float64) float64 {
	if s.Range == 0 {
		return 0
	}
	px := (v - s.Offset) / s.Range * s.Size
	if s.Name == "y" {
		return s.Size - px
	}
	return px
}

// Visible reports whether a value lies within the axis range
func (s *AxisState) Visible(v float64) bool {
	return v >= s.Offset && v <= s.Offset+s.Range
}

// layout computes range, offset and step of an axis
func layout(name string, size, zoom, center float64, axis Axis, spacing float64) AxisState {
	s := AxisState{
		Name:   name,
		Size:   size,
		Zoom:   zoom,
		Center: center,
		Origin: axis.Origin,
	}
	s.Range = size * zoom
	lo, hi := axis.bounds()
	s.Offset = clampSwap(center-s.Range*0.5, lo, hi-s.Range)
	s.Step = NiceStep(spacing * zoom)
	return s
}

// NiceStep returns the smallest value of the form {1,2,5}·10^k that is at
// least min
func NiceStep(min float64) float64 {
	if min <= 0 || math.IsNaN(min) || math.IsInf(min, 0) {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(min)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := base * m; step >= min*(1-1e-9) {
			return step
		}
	}
	return base * 10
}

// evenLines returns every multiple of step inside [offset, offset+rng]
func evenLines(offset, rng, step float64) []float64 {
	if step <= 0 || rng <= 0 || math.IsInf(offset, 0) || math.IsNaN(offset) {
		return nil
	}
	first := math.Ceil(offset / step)
	last := math.Floor((offset + rng) / step)
	if last-first+1 > maxLinesPerAxis {
		last = first + maxLinesPerAxis - 1
	}
	lines := make([]float64, 0, int(last-first+1))
	for i := first; i <= last; i++ {
		lines = append(lines, i*step)
	}
	return lines
}

// FormatValue prints v with as many decimals as the step needs
func FormatValue(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	out := strconv.FormatFloat(v, 'f', decimals, 64)
	if out == "-0" || (len(out) > 1 && out[0] == '-' && isZero(out[1:])) {
		return out[1:]
	}
	return out
}

func isZero(s string) bool {
	for _, r := range s {
		if r != '0' && r != '.' {
			return false
		}
	}
	return true
}

// clampSwap clamps v into [a, b], accepting the bounds in either order
func clampSwap(v, a, b float64) float64 {
	if a > b {
		a, b = b, a
	}
	return math.Max(a, math.Min(b, v))
}

// sameValue compares line values that may carry rounding error
func sameValue(a, b, step float64) bool {
	return math.Abs(a-b) <= step*1e-9
}
