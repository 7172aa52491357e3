package surface

import (
	"fmt"
	"image/color"
)

// OpKind is the kind of a recorded draw call
type OpKind int

const (
	OpClear OpKind = iota
	OpLine
	OpText
)

// Op is one recorded draw call
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64
	Color          color.Color
	Width          float64
	Text           string
	Style          TextStyle
}

// Recorder is a Surface that records draw calls instead of painting them
type Recorder struct {
	Ops    []Op
	width  int
	height int
}

// NewRecorder creates a recorder of the given size
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Clear records a clear and forgets earlier calls
func (r *Recorder) Clear() {
	r.Ops = []Op{{Kind: OpClear}}
}

// StrokeLine records a line
func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

// DrawText records a label
func (r *Recorder) DrawText(text string, x, y float64, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X1: x, Y1: y, Text: text, Style: style})
}

// Resize changes the reported size
func (r *Recorder) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	r.width, r.height = width, height
	return nil
}

// Size returns the surface size
func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

// MeasureText estimates text extents
func (r *Recorder) MeasureText(text string, size float64) (float64, float64) {
	return EstimateText(text, size)
}

// Lines returns the recorded lines in draw order
func (r *Recorder) Lines() []Op {
	return r.filter(OpLine)
}

// Texts returns the recorded labels in draw order
func (r *Recorder) Texts() []Op {
	return r.filter(OpText)
}

// Reset drops all recorded calls
func (r *Recorder) Reset() {
	r.Ops = nil
}

func (r *Recorder) filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
