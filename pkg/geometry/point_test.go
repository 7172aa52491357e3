package geometry

import (
	"math"
	"testing"
)

func TestPointAdd(t *testing.T) {
	result := NewPoint(1, 2).Add(NewPoint(4, 5))

	expected := NewPoint(5, 7)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestPointSub(t *testing.T) {
	result := NewPoint(5, 7).Sub(NewPoint(1, 2))

	expected := NewPoint(4, 5)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestPointDistance(t *testing.T) {
	distance := NewPoint(0, 0).Distance(NewPoint(3, 4))

	if math.Abs(distance-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", distance)
	}
}

func TestPointMidpoint(t *testing.T) {
	mid := NewPoint(-2, 4).Midpoint(NewPoint(2, 8))

	expected := NewPoint(0, 6)
	if mid != expected {
		t.Errorf("Midpoint failed: expected %v, got %v", expected, mid)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !NewPoint(1, 2).IsFinite() {
		t.Error("expected finite point")
	}
	if NewPoint(math.NaN(), 0).IsFinite() {
		t.Error("NaN coordinate reported as finite")
	}
	if NewPoint(0, math.Inf(-1)).IsFinite() {
		t.Error("Inf coordinate reported as finite")
	}
}

func TestRectExtendAndCenter(t *testing.T) {
	r := EmptyRect()
	if !r.IsEmpty() {
		t.Fatal("EmptyRect should be empty")
	}

	r.Extend(NewPoint(0, 0))
	r.Extend(NewPoint(100, 50))

	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("unexpected size %vx%v", r.Width(), r.Height())
	}
	if c := r.Center(); c != NewPoint(50, 25) {
		t.Errorf("Center failed: got %v", c)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(NewPoint(0, 0), NewPoint(1, 1))
	b := NewRect(NewPoint(5, -2), NewPoint(3, 4))

	u := a.Union(b)
	expected := Rect{Min: NewPoint(0, -2), Max: NewPoint(5, 4)}
	if u != expected {
		t.Errorf("Union failed: expected %v, got %v", expected, u)
	}

	if got := EmptyRect().Union(a); got != a {
		t.Errorf("Union with empty failed: got %v", got)
	}
	if !u.Contains(NewPoint(4, 3)) || u.Contains(NewPoint(6, 0)) {
		t.Error("Contains returned wrong result")
	}
}

func TestPointString(t *testing.T) {
	if got := NewPoint(1.5, -2).String(); got != "(1.50, -2.00)" {
		t.Errorf("String() = %q", got)
	}
}
