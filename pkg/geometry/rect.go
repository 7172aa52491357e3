package geometry

import "math"

// Rect is an axis-aligned bounding box in world coordinates
type Rect struct {
	Min Point `yaml:"min"`
	Max Point `yaml:"max"`
}

// NewRect creates a rectangle from two corners in any order
func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// EmptyRect returns an inverted rectangle that any Extend call will replace
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the rectangle contains no points
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Extend grows the rectangle to include p
func (r *Rect) Extend(p Point) {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
}

// Union returns the smallest rectangle containing both r and other
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	out := r
	out.Extend(other.Min)
	out.Extend(other.Max)
	return out
}

// Center returns the centroid of the rectangle
func (r Rect) Center() Point {
	return r.Min.Midpoint(r.Max)
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
