package rlapp

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
)

// keyNames translates raylib key codes to shortcut key names
var keyNames = map[int32]string{
	rl.KeyEscape:     "Escape",
	rl.KeyS:          "S",
	rl.KeyG:          "G",
	rl.KeyM:          "M",
	rl.KeyD:          "D",
	rl.KeyEqual:      "=",
	rl.KeyKpAdd:      "+",
	rl.KeyMinus:      "-",
	rl.KeyKpSubtract: "-",
	rl.KeyF:          "F",
	rl.KeyZero:       "0",
	rl.KeyHome:       "Home",
	rl.KeyL:          "L",
	rl.KeyC:          "C",
}

// readDevice samples the mouse, wheel and touch points for this frame.
// raylib reports wheel movement positive away from the user, the opposite
// of a wheel delta.
func readDevice(now time.Time) gesture.DeviceState {
	mouse := rl.GetMousePosition()
	s := gesture.DeviceState{
		Mouse: geometry.NewPoint(float64(mouse.X), float64(mouse.Y)),
		Buttons: [3]bool{
			gesture.ButtonLeft:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
			gesture.ButtonRight:  rl.IsMouseButtonDown(rl.MouseButtonRight),
			gesture.ButtonMiddle: rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		},
		Wheel:     -float64(rl.GetMouseWheelMove()),
		WheelMode: gesture.WheelLine,
		Time:      now,
	}

	n := rl.GetTouchPointCount()
	if n == 1 && s.Buttons != [3]bool{} && rl.GetTouchPosition(0) == mouse {
		// desktop builds mirror the pressed mouse as touch 0
		return s
	}
	for i := int32(0); i < n; i++ {
		p := rl.GetTouchPosition(i)
		s.Touches = append(s.Touches, gesture.Touch{
			ID:       int(rl.GetTouchPointId(i)),
			Position: geometry.NewPoint(float64(p.X), float64(p.Y)),
		})
	}
	return s
}

// pressedActions drains the key queue of this frame
func pressedActions() []shortcut.Action {
	var actions []shortcut.Action
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if a := shortcut.ForKey(keyNames[key]); a != shortcut.None {
			actions = append(actions, a)
		}
	}
	return actions
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}
