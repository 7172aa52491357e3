package rlapp

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/goplane/pkg/surface"
)

// textSpacing is the extra space between glyphs, in pixels
const textSpacing = 1

// Surface draws directly into the raylib back buffer. It is only valid
// between BeginDrawing and EndDrawing.
type Surface struct {
	font rl.Font
	bg   rl.Color
}

var _ surface.Surface = (*Surface)(nil)
var _ surface.TextMeasurer = (*Surface)(nil)

// NewSurface creates a surface drawing text with font
func NewSurface(font rl.Font, background color.Color) *Surface {
	if background == nil {
		background = color.White
	}
	return &Surface{font: font, bg: toColor(background)}
}

// Clear fills the window with the background colour
func (s *Surface) Clear() {
	rl.ClearBackground(s.bg)
}

// StrokeLine draws a line segment
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		float32(width),
		toColor(c),
	)
}

// DrawText draws a label anchored according to style
func (s *Surface) DrawText(text string, x, y float64, style surface.TextStyle) {
	if text == "" {
		return
	}
	w, h := s.MeasureText(text, style.Size)
	ax, ay := style.Anchor()
	pos := rl.Vector2{X: float32(x - w*ax), Y: float32(y - h*ay)}
	c := style.Color
	if c == nil {
		c = color.Black
	}
	rl.DrawTextEx(s.font, text, pos, float32(style.Size), textSpacing, toColor(c))
}

// MeasureText implements surface.TextMeasurer
func (s *Surface) MeasureText(text string, size float64) (float64, float64) {
	v := rl.MeasureTextEx(s.font, text, float32(size), textSpacing)
	return float64(v.X), float64(v.Y)
}

// Resize does nothing; the window owns the size
func (s *Surface) Resize(width, height int) error {
	return nil
}

// Size returns the window size
func (s *Surface) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func toColor(c color.Color) rl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
