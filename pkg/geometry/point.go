package geometry

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Lerp interpolates between p and other; t=0 yields p, t=1 yields other
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// Midpoint returns the point halfway between p and other
func (p Point) Midpoint(other Point) Point {
	return p.Lerp(other, 0.5)
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// String formats the point with two decimals
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
