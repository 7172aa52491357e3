// Package scene holds simple drawable content (markers and polylines) shown
// on top of the grid. It provides content bounds for fitting the viewport.
package scene

import (
	"errors"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/geometry"
)

// ErrEmpty is returned when bounds are requested for a scene without content
var ErrEmpty = errors.New("scene is empty")

// Marker is a labelled point
type Marker struct {
	Position geometry.Point `yaml:",inline"`
	Label    string         `yaml:"label,omitempty"`
	Color    string         `yaml:"color,omitempty"`
}

// Polyline is a connected series of points
type Polyline struct {
	Points []geometry.Point `yaml:"points"`
	Color  string           `yaml:"color,omitempty"`
	Width  float64          `yaml:"width,omitempty"`
	Closed bool             `yaml:"closed,omitempty"`
}

// Scene represents a collection of markers and polylines in world coordinates
type Scene struct {
	Name      string     `yaml:"name,omitempty"`
	Markers   []Marker   `yaml:"markers,omitempty"`
	Polylines []Polyline `yaml:"polylines,omitempty"`

	OnChange event.Signal[*Scene] `yaml:"-"`
}

// New creates an empty scene
func New(name string) *Scene {
	return &Scene{Name: name}
}

// AddMarker adds a marker to the scene
func (s *Scene) AddMarker(m Marker) {
	s.Markers = append(s.Markers, m)
	s.OnChange.Emit(s)
}

// AddPolyline adds a polyline to the scene. Lines without points are ignored.
func (s *Scene) AddPolyline(p Polyline) {
	if len(p.Points) == 0 {
		return
	}
	s.Polylines = append(s.Polylines, p)
	s.OnChange.Emit(s)
}

// Clear removes all content
func (s *Scene) Clear() {
	s.Markers = nil
	s.Polylines = nil
	s.OnChange.Emit(s)
}

// Replace takes over the content of other, keeping the observers of s
func (s *Scene) Replace(other *Scene) {
	s.Name = other.Name
	s.Markers = append([]Marker(nil), other.Markers...)
	s.Polylines = append([]Polyline(nil), other.Polylines...)
	s.OnChange.Emit(s)
}

// Count returns the number of markers and polylines
func (s *Scene) Count() int {
	return len(s.Markers) + len(s.Polylines)
}

// BoundingBox calculates the bounding box of all content
func (s *Scene) BoundingBox() geometry.Rect {
	bbox := geometry.EmptyRect()
	for _, m := range s.Markers {
		bbox.Extend(m.Position)
	}
	for _, p := range s.Polylines {
		for _, pt := range p.Points {
			bbox.Extend(pt)
		}
	}
	return bbox
}

// ContentBounds returns the bounding box, or ErrEmpty without content
func (s *Scene) ContentBounds() (geometry.Rect, error) {
	bbox := s.BoundingBox()
	if bbox.IsEmpty() {
		return geometry.Rect{}, ErrEmpty
	}
	return bbox, nil
}

// Length returns the total length of the polyline
func (p Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i-1].Distance(p.Points[i])
	}
	if p.Closed && len(p.Points) > 2 {
		total += p.Points[len(p.Points)-1].Distance(p.Points[0])
	}
	return total
}
