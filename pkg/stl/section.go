package stl

import (
	"math"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// snap is the grid cut points are matched on when chaining segments
const snap = 1e-6

// Loop is a chain of cut points. Closed loops do not repeat the first point.
type Loop struct {
	Points []geometry.Point
	Closed bool
}

type segment struct {
	a, b geometry.Point
}

type key struct {
	x, y int64
}

func keyOf(p geometry.Point) key {
	return key{int64(math.Round(p.X / snap)), int64(math.Round(p.Y / snap))}
}

// Section cuts the mesh with the horizontal plane at z and returns the
// outline as chains of XY points. Vertices lying on the plane count as above
// it, so touching faces do not produce zero-length segments.
func (m *Mesh) Section(z float64) []Loop {
	var segs []segment
	for _, t := range m.Triangles {
		if s, ok := cut(t, z); ok {
			segs = append(segs, s)
		}
	}
	return chain(segs)
}

func cut(t Triangle, z float64) (segment, bool) {
	var pts []geometry.Point
	for i := 0; i < 3; i++ {
		a, b := t.V[i], t.V[(i+1)%3]
		if (a.Z >= z) == (b.Z >= z) {
			continue
		}
		f := (z - a.Z) / (b.Z - a.Z)
		pts = append(pts, geometry.NewPoint(a.X+(b.X-a.X)*f, a.Y+(b.Y-a.Y)*f))
	}
	if len(pts) != 2 || keyOf(pts[0]) == keyOf(pts[1]) {
		return segment{}, false
	}
	return segment{pts[0], pts[1]}, true
}

// chain joins segments sharing end points into loops
func chain(segs []segment) []Loop {
	ends := make(map[key][]int, len(segs)*2)
	for i, s := range segs {
		ends[keyOf(s.a)] = append(ends[keyOf(s.a)], i)
		ends[keyOf(s.b)] = append(ends[keyOf(s.b)], i)
	}
	used := make([]bool, len(segs))

	next := func(p geometry.Point) (geometry.Point, bool) {
		for _, i := range ends[keyOf(p)] {
			if used[i] {
				continue
			}
			used[i] = true
			if keyOf(segs[i].a) == keyOf(p) {
				return segs[i].b, true
			}
			return segs[i].a, true
		}
		return geometry.Point{}, false
	}

	var loops []Loop
	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		start := keyOf(s.a)
		pts := []geometry.Point{s.a, s.b}

		// forwards from b, then backwards from a for open chains
		for {
			p, ok := next(pts[len(pts)-1])
			if !ok {
				break
			}
			if keyOf(p) == start {
				loops = append(loops, Loop{Points: pts, Closed: true})
				pts = nil
				break
			}
			pts = append(pts, p)
		}
		if pts == nil {
			continue
		}
		for {
			p, ok := next(pts[0])
			if !ok {
				break
			}
			pts = append([]geometry.Point{p}, pts...)
		}
		loops = append(loops, Loop{Points: pts})
	}
	return loops
}
