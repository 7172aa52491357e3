// Package replay feeds recorded input through a fresh gesture engine and
// viewport controller so that a session can be reproduced exactly.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// ErrNoGestures is returned for a script without any input steps
var ErrNoGestures = errors.New("replay script has no gestures")

// Size is the viewport size the script was recorded at
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Touch is one finger of a touch step
type Touch struct {
	ID int     `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

// Step is one recorded raw input event. At is the offset from the start of
// the recording in milliseconds.
type Step struct {
	Kind      string   `yaml:"kind"`
	X         *float64 `yaml:"x,omitempty"`
	Y         *float64 `yaml:"y,omitempty"`
	Button    string   `yaml:"button,omitempty"`
	DeltaY    float64  `yaml:"delta_y,omitempty"`
	DeltaMode string   `yaml:"delta_mode,omitempty"`
	Touches   []Touch  `yaml:"touches,omitempty"`
	At        int64    `yaml:"at"`
}

// Script is a recorded session
type Script struct {
	Size     Size           `yaml:"size"`
	State    viewport.State `yaml:"state"`
	Gestures []Step         `yaml:"gestures"`
}

var kinds = map[string]gesture.Kind{
	"down":         gesture.PointerDown,
	"move":         gesture.PointerMove,
	"up":           gesture.PointerUp,
	"wheel":        gesture.Wheel,
	"touch_start":  gesture.TouchStart,
	"touch_move":   gesture.TouchMove,
	"touch_end":    gesture.TouchEnd,
	"touch_cancel": gesture.TouchCancel,
}

var buttons = map[string]gesture.Button{
	"":       gesture.ButtonLeft,
	"left":   gesture.ButtonLeft,
	"right":  gesture.ButtonRight,
	"middle": gesture.ButtonMiddle,
}

var wheelModes = map[string]gesture.WheelMode{
	"":      gesture.WheelPixel,
	"pixel": gesture.WheelPixel,
	"line":  gesture.WheelLine,
	"page":  gesture.WheelPage,
}

// Load reads a script from a YAML file
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay script: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads and validates a script
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoGestures
		}
		return nil, fmt.Errorf("failed to decode replay script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step can be converted to a raw event
func (s *Script) Validate() error {
	if len(s.Gestures) == 0 {
		return ErrNoGestures
	}
	if s.Size.Width <= 0 || s.Size.Height <= 0 {
		return fmt.Errorf("invalid replay size %gx%g", s.Size.Width, s.Size.Height)
	}
	for i, step := range s.Gestures {
		if _, err := step.raw(); err != nil {
			return fmt.Errorf("gesture %d: %w", i, err)
		}
	}
	return nil
}

// Encode writes the script as YAML
func (s *Script) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode replay script: %w", err)
	}
	return enc.Close()
}

// raw converts the step to an engine event without a timestamp. A pointer
// step without coordinates yields a malformed event, which the engine ignores.
func (s Step) raw() (gesture.RawEvent, error) {
	kind, ok := kinds[strings.ToLower(s.Kind)]
	if !ok {
		return gesture.RawEvent{}, fmt.Errorf("unknown kind %q", s.Kind)
	}
	button, ok := buttons[strings.ToLower(s.Button)]
	if !ok {
		return gesture.RawEvent{}, fmt.Errorf("unknown button %q", s.Button)
	}
	mode, ok := wheelModes[strings.ToLower(s.DeltaMode)]
	if !ok {
		return gesture.RawEvent{}, fmt.Errorf("unknown delta mode %q", s.DeltaMode)
	}

	ev := gesture.RawEvent{
		Kind:      kind,
		Button:    button,
		DeltaY:    s.DeltaY,
		DeltaMode: mode,
	}
	if s.X != nil && s.Y != nil {
		ev.Position = gesture.At(*s.X, *s.Y)
	}
	for _, t := range s.Touches {
		ev.Touches = append(ev.Touches, gesture.Touch{ID: t.ID, Position: geometry.NewPoint(t.X, t.Y)})
	}
	return ev, nil
}
