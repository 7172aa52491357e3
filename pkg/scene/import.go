package scene

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/goplane/pkg/openscad"
	"github.com/philipparndt/goplane/pkg/stl"
)

// SectionColor is used for outlines imported from STL meshes
const SectionColor = "#333333"

// ImportSTL cuts the mesh in filename at height z and returns the outline as
// a scene. A NaN z cuts at half the mesh height.
func ImportSTL(filename string, z float64) (*Scene, error) {
	m, err := stl.Parse(filename)
	if err != nil {
		return nil, err
	}
	return FromSection(m, z), nil
}

// FromSection converts the cross-section of m at z into polylines
func FromSection(m *stl.Mesh, z float64) *Scene {
	if math.IsNaN(z) {
		z = m.MidHeight()
	}
	name := m.Name
	if name == "" {
		name = "section"
	}
	s := New(fmt.Sprintf("%s @ z=%g", name, z))
	for _, loop := range m.Section(z) {
		s.Polylines = append(s.Polylines, Polyline{
			Points: loop.Points,
			Color:  SectionColor,
			Closed: loop.Closed,
		})
	}
	return s
}

// ImportSCAD renders an OpenSCAD model to a temporary STL file and imports
// its cross-section at z
func ImportSCAD(ctx context.Context, filename string, z float64) (*Scene, error) {
	tmp, err := os.MkdirTemp("", "goplane-scad-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	path, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}
	out := filepath.Join(tmp, "model.stl")
	r := openscad.NewRenderer(filepath.Dir(path))
	if err := r.RenderToSTL(ctx, filepath.Base(filename), out); err != nil {
		return nil, err
	}
	m, err := stl.Parse(out)
	if err != nil {
		return nil, err
	}
	m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return FromSection(m, z), nil
}

// Sources lists the files a scene is read from: the file itself and, for
// OpenSCAD models, everything it uses or includes
func Sources(filename string) []string {
	if !isSCAD(filename) {
		return []string{filename}
	}
	path, err := filepath.Abs(filename)
	if err != nil {
		return []string{filename}
	}
	deps, err := openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(filepath.Base(path))
	if err != nil {
		return []string{filename}
	}
	return deps
}

func isSTL(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".stl")
}

func isSCAD(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".scad")
}
