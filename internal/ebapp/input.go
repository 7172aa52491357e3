package ebapp

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
)

var keyNames = map[ebiten.Key]string{
	ebiten.KeyEscape:         "Escape",
	ebiten.KeyS:              "S",
	ebiten.KeyG:              "G",
	ebiten.KeyM:              "M",
	ebiten.KeyD:              "D",
	ebiten.KeyEqual:          "=",
	ebiten.KeyNumpadAdd:      "+",
	ebiten.KeyMinus:          "-",
	ebiten.KeyNumpadSubtract: "-",
	ebiten.KeyF:              "F",
	ebiten.KeyDigit0:         "0",
	ebiten.KeyHome:           "Home",
	ebiten.KeyL:              "L",
	ebiten.KeyC:              "C",
}

func actionFor(k ebiten.Key) shortcut.Action {
	return shortcut.ForKey(keyNames[k])
}

// touch is one finger as reported by ebiten
type touch struct {
	id   ebiten.TouchID
	x, y int
}

// deviceState builds a snapshot from raw ebiten input. ebiten reports the
// wheel positive when scrolling up, the opposite of a wheel delta.
func deviceState(cx, cy int, buttons [3]bool, wheelY float64, touches []touch, now time.Time) gesture.DeviceState {
	s := gesture.DeviceState{
		Mouse:     geometry.NewPoint(float64(cx), float64(cy)),
		Buttons:   buttons,
		Wheel:     -wheelY,
		WheelMode: gesture.WheelLine,
		Time:      now,
	}
	for _, t := range touches {
		s.Touches = append(s.Touches, gesture.Touch{
			ID:       int(t.id),
			Position: geometry.NewPoint(float64(t.x), float64(t.y)),
		})
	}
	return s
}

func (g *Game) readDevice(now time.Time) gesture.DeviceState {
	_, wheelY := ebiten.Wheel()
	buttons := [3]bool{
		gesture.ButtonLeft:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		gesture.ButtonRight:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		gesture.ButtonMiddle: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	touches := make([]touch, 0, len(g.touchIDs))
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, touch{id: id, x: x, y: y})
	}
	return deviceState(g.cursor.X, g.cursor.Y, buttons, wheelY, touches, now)
}

func appendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func quitRequested(pressed []ebiten.Key) bool {
	if !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return false
	}
	for _, k := range pressed {
		if k == ebiten.KeyC || k == ebiten.KeyQ {
			return true
		}
	}
	return false
}
