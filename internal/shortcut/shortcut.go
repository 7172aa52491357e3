// Package shortcut maps keyboard keys to viewport commands shared by every
// desktop host.
package shortcut

import (
	"strings"

	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// FitPadding is the margin in world units kept around fitted content
const FitPadding = 20.0

// Action is a command bound to a key
type Action int

const (
	None Action = iota
	Cancel
	SelectMode
	GrabMode
	MeasureMode
	DrawMode
	ZoomIn
	ZoomOut
	Fit
	Reset
	ToggleGrid
	ClearMeasurements
)

var actionNames = map[Action]string{
	None:              "none",
	Cancel:            "cancel",
	SelectMode:        "select",
	GrabMode:          "grab",
	MeasureMode:       "measure",
	DrawMode:          "draw",
	ZoomIn:            "zoom-in",
	ZoomOut:           "zoom-out",
	Fit:               "fit",
	Reset:             "reset",
	ToggleGrid:        "toggle-grid",
	ClearMeasurements: "clear-measurements",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// keys uses the key names of fyne; other toolkits translate to them first
var keys = map[string]Action{
	"Escape": Cancel,
	"S":      SelectMode,
	"G":      GrabMode,
	"M":      MeasureMode,
	"D":      DrawMode,
	"=":      ZoomIn,
	"+":      ZoomIn,
	"-":      ZoomOut,
	"F":      Fit,
	"0":      Reset,
	"Home":   Reset,
	"L":      ToggleGrid,
	"C":      ClearMeasurements,
}

// ForKey returns the action bound to a key name. Letters match in any case.
func ForKey(name string) Action {
	if a, ok := keys[name]; ok {
		return a
	}
	return keys[strings.ToUpper(name)]
}

// Bindings returns a copy of the key table, for help screens
func Bindings() map[string]Action {
	out := make(map[string]Action, len(keys))
	for k, a := range keys {
		out[k] = a
	}
	return out
}

// Target is what actions operate on. A nil Grid or Tool skips the actions
// that need it.
type Target struct {
	Controller *viewport.Controller
	Grid       *grid.Renderer
	Tool       *measurement.Tool
}

// Apply runs a and reports whether anything handled it
func (t Target) Apply(a Action) bool {
	c := t.Controller
	switch a {
	case Cancel:
		if t.Tool == nil {
			return false
		}
		t.Tool.Cancel()
	case SelectMode:
		c.SetMode(viewport.ModeSelect)
	case GrabMode:
		c.SetMode(viewport.ModeGrab)
	case MeasureMode:
		c.SetMode(viewport.ModeMeasure)
	case DrawMode:
		c.SetMode(viewport.ModeDraw)
	case ZoomIn:
		c.ZoomIn(0)
	case ZoomOut:
		c.ZoomOut(0)
	case Fit:
		c.FitBounds(FitPadding)
	case Reset:
		c.ResetView()
	case ToggleGrid:
		if t.Grid == nil {
			return false
		}
		t.Grid.SetVisible(!t.Grid.Settings().Visible)
	case ClearMeasurements:
		if t.Tool == nil {
			return false
		}
		t.Tool.Clear()
	default:
		return false
	}
	return true
}
