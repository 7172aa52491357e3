// Package surface defines the 2-D drawing target used by the grid and
// measurement overlays.
package surface

import "image/color"

// Baseline is the vertical anchor of drawn text
type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
	BaselineBottom
)

// Align is the horizontal anchor of drawn text
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how a label is drawn
type TextStyle struct {
	Size     float64
	Color    color.Color
	Baseline Baseline
	Align    Align
}

// Anchor returns the fractional anchor point of the style, (0,0) being top-left
func (s TextStyle) Anchor() (ax, ay float64) {
	switch s.Align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	switch s.Baseline {
	case BaselineMiddle:
		ay = 0.5
	case BaselineBottom:
		ay = 1
	}
	return ax, ay
}

// Surface is a drawing target in screen pixels
type Surface interface {
	Clear()
	StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64)
	DrawText(text string, x, y float64, style TextStyle)
	Resize(width, height int) error
	Size() (width, height int)
}

// TextMeasurer is implemented by surfaces that can measure text
type TextMeasurer interface {
	MeasureText(text string, size float64) (width, height float64)
}

// MeasureText measures with s when it supports it and estimates otherwise
func MeasureText(s Surface, text string, size float64) (float64, float64) {
	if m, ok := s.(TextMeasurer); ok {
		return m.MeasureText(text, size)
	}
	return EstimateText(text, size)
}

// EstimateText approximates the extent of text in a proportional font
func EstimateText(text string, size float64) (float64, float64) {
	return float64(len([]rune(text))) * size * 0.6, size
}
