// Package analysis computes summary measurements of scene content.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/scene"
)

// SegmentInfo describes one straight piece of a polyline
type SegmentInfo struct {
	Start    geometry.Point
	End      geometry.Point
	Length   float64
	Polyline int
}

// MeasurementResult contains summary measurements of a scene
type MeasurementResult struct {
	Bounds        geometry.Rect
	Empty         bool
	MarkerCount   int
	PolylineCount int
	ClosedCount   int
	SegmentCount  int
	TotalLength   float64
	EnclosedArea  float64
	MinSegment    float64
	MaxSegment    float64
	AvgSegment    float64
	AllSegments   []SegmentInfo
}

// AnalyzeScene measures every polyline and marker of s
func AnalyzeScene(s *scene.Scene) *MeasurementResult {
	result := &MeasurementResult{
		MarkerCount:   len(s.Markers),
		PolylineCount: len(s.Polylines),
	}

	bounds, err := s.ContentBounds()
	result.Bounds = bounds
	result.Empty = err != nil

	minLength := math.MaxFloat64
	maxLength := 0.0

	for i, p := range s.Polylines {
		for _, seg := range segments(p) {
			length := seg[0].Distance(seg[1])
			result.AllSegments = append(result.AllSegments, SegmentInfo{
				Start:    seg[0],
				End:      seg[1],
				Length:   length,
				Polyline: i,
			})

			result.TotalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
		if p.Closed && len(p.Points) > 2 {
			result.ClosedCount++
			result.EnclosedArea += Area(p.Points)
		}
	}

	result.SegmentCount = len(result.AllSegments)
	if result.SegmentCount > 0 {
		result.MinSegment = minLength
		result.MaxSegment = maxLength
		result.AvgSegment = result.TotalLength / float64(result.SegmentCount)
	}
	return result
}

func segments(p scene.Polyline) [][2]geometry.Point {
	var out [][2]geometry.Point
	for i := 1; i < len(p.Points); i++ {
		out = append(out, [2]geometry.Point{p.Points[i-1], p.Points[i]})
	}
	if p.Closed && len(p.Points) > 2 {
		out = append(out, [2]geometry.Point{p.Points[len(p.Points)-1], p.Points[0]})
	}
	return out
}

// Area returns the unsigned area of the polygon through pts (shoelace formula)
func Area(pts []geometry.Point) float64 {
	sum := 0.0
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// FindLongestSegments returns the n longest segments
func FindLongestSegments(result *MeasurementResult, n int) []SegmentInfo {
	return sorted(result, n, func(a, b SegmentInfo) bool { return a.Length > b.Length })
}

// FindShortestSegments returns the n shortest segments
func FindShortestSegments(result *MeasurementResult, n int) []SegmentInfo {
	return sorted(result, n, func(a, b SegmentInfo) bool { return a.Length < b.Length })
}

func sorted(result *MeasurementResult, n int, less func(a, b SegmentInfo) bool) []SegmentInfo {
	out := make([]SegmentInfo, len(result.AllSegments))
	copy(out, result.AllSegments)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// FindNearestPoint returns the polyline vertex or marker closest to p
func FindNearestPoint(s *scene.Scene, p geometry.Point) (geometry.Point, float64, bool) {
	var nearest geometry.Point
	best := math.MaxFloat64
	found := false

	visit := func(q geometry.Point) {
		if d := p.Distance(q); d < best {
			nearest, best, found = q, d, true
		}
	}
	for _, m := range s.Markers {
		visit(m.Position)
	}
	for _, l := range s.Polylines {
		for _, q := range l.Points {
			visit(q)
		}
	}
	return nearest, best, found
}

// FormatMeasurement formats a value with its unit
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatPoint formats a point with six decimals
func FormatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}
