package rlapp

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/goplane/version"
)

const (
	fontSize   = float32(14)
	lineHeight = float32(18)
	padding    = float32(8)
)

var (
	panelColor = rl.NewColor(0, 0, 0, 180)
	textColor  = rl.NewColor(240, 240, 240, 255)
	hintColor  = rl.NewColor(160, 200, 255, 255)
)

// drawUI draws the status panel in the bottom-left corner
func (app *App) drawUI() {
	ctrl := app.plane.Controller
	cursor := ctrl.ScreenToWorld(float64(app.cursorScreen.X), float64(app.cursorScreen.Y))

	lines := []string{
		fmt.Sprintf("Zoom: %.3f", ctrl.Zoom()),
		fmt.Sprintf("Center: %s", ctrl.Center()),
		fmt.Sprintf("Cursor: %s", cursor),
		fmt.Sprintf("Mode: %s", ctrl.Mode()),
	}
	if app.lastResult != "" {
		lines = append(lines, fmt.Sprintf("Last: %s", app.lastResult))
	}

	width := float32(0)
	for _, l := range lines {
		if size := rl.MeasureTextEx(app.font, l, fontSize, textSpacing); size.X > width {
			width = size.X
		}
	}
	height := lineHeight*float32(len(lines)) + padding*2
	x := float32(10)
	y := float32(rl.GetScreenHeight()) - height - 10

	rl.DrawRectangle(int32(x), int32(y), int32(width+padding*2), int32(height), panelColor)
	for i, l := range lines {
		pos := rl.Vector2{X: x + padding, Y: y + padding + lineHeight*float32(i)}
		rl.DrawTextEx(app.font, l, pos, fontSize, textSpacing, textColor)
	}

	help := fmt.Sprintf("goplane %s  S/G/M/D modes  +/- zoom  F fit  0 reset  L grid  C clear", version.GetVersion())
	rl.DrawTextEx(app.font, help, rl.Vector2{X: 10, Y: 10}, fontSize, textSpacing, hintColor)
}
