package scene

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads a YAML scene file. STL meshes and OpenSCAD models are accepted
// as well and shown as their cross-section at half height.
func Parse(filename string) (*Scene, error) {
	switch {
	case isSTL(filename):
		return ImportSTL(filename, math.NaN())
	case isSCAD(filename):
		return ImportSCAD(context.Background(), filename, math.NaN())
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	s, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return s, nil
}

// Decode reads a YAML scene from r
func Decode(r io.Reader) (*Scene, error) {
	s := New("")
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if err == io.EOF {
			return s, nil
		}
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	for i, p := range s.Polylines {
		if len(p.Points) == 0 {
			return nil, fmt.Errorf("polyline %d has no points", i)
		}
	}
	return s, nil
}

// Save writes the scene as YAML
func (s *Scene) Save(filename string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
