package viewport

import (
	"fmt"
	"strings"
)

// Mode selects what a primary-button drag does
type Mode int

const (
	ModeSelect  Mode = iota // selection enabled, drag does not pan
	ModeGrab                // drag pans, selection disabled
	ModeMeasure             // clicks go to the measurement tool
	ModeDraw                // free drawing by an external collaborator
)

var modeNames = map[Mode]string{
	ModeSelect:  "select",
	ModeGrab:    "grab",
	ModeMeasure: "measure",
	ModeDraw:    "draw",
}

// String returns the lower-case mode name
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode parses a mode name, case-insensitively
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeSelect, fmt.Errorf("unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Cursor is the pointer style a host should show over the viewport
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorCrosshair
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorCrosshair:
		return "crosshair"
	default:
		return "default"
	}
}
