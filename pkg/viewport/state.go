package viewport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/goplane/pkg/geometry"
)

// State is the persistable part of a viewport
type State struct {
	Center geometry.Point `yaml:"center"`
	Zoom   float64        `yaml:"zoom"`
	Mode   Mode           `yaml:"mode"`
}

// MarshalState encodes a state as YAML
func MarshalState(s State) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode viewport state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a YAML viewport state
func UnmarshalState(data []byte) (State, error) {
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode viewport state: %w", err)
	}
	return s, nil
}

// LoadState reads a state file. A missing file is not an error and reports
// false.
func LoadState(path string) (State, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("failed to read viewport state: %w", err)
	}
	s, err := UnmarshalState(data)
	if err != nil {
		return State{}, false, err
	}
	return s, true, nil
}

// SaveState writes a state file, creating its directory
func SaveState(path string, s State) error {
	data, err := MarshalState(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write viewport state: %w", err)
	}
	return nil
}
