package ebapp

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// StatusText describes the viewport for the overlay
func (g *Game) StatusText() string {
	ctrl := g.plane.Controller
	cursor := ctrl.ScreenToWorld(float64(g.cursor.X), float64(g.cursor.Y))
	parts := []string{
		fmt.Sprintf("zoom %.3f", ctrl.Zoom()),
		fmt.Sprintf("center %s", ctrl.Center()),
		fmt.Sprintf("cursor %s", cursor),
		fmt.Sprintf("mode %s", ctrl.Mode()),
	}
	if g.last != "" {
		parts = append(parts, "last "+g.last)
	}
	return strings.Join(parts, " | ")
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.StatusText(), 8, screen.Bounds().Dy()-20)
}
