// Package stl reads STL meshes and cuts planar cross-sections from them, so
// a 3-D part can be inspected as a 2-D outline.
package stl

import "math"

// Vec3 is a point in model space
type Vec3 struct {
	X, Y, Z float64
}

// Triangle is one facet; the normal is kept as stored in the file
type Triangle struct {
	Normal Vec3
	V      [3]Vec3
}

// Mesh is a named list of facets
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// Bounds returns the component-wise minimum and maximum vertex. An empty
// mesh returns +Inf and -Inf.
func (m *Mesh) Bounds() (lo, hi Vec3) {
	lo = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, t := range m.Triangles {
		for _, v := range t.V {
			lo = Vec3{math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z)}
			hi = Vec3{math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z)}
		}
	}
	return lo, hi
}

// MidHeight returns the Z halfway between the lowest and highest vertex
func (m *Mesh) MidHeight() float64 {
	lo, hi := m.Bounds()
	if len(m.Triangles) == 0 {
		return 0
	}
	return (lo.Z + hi.Z) / 2
}
