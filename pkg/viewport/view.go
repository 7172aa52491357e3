package viewport

import "github.com/philipparndt/goplane/pkg/geometry"

// View is an immutable snapshot of the screen to world transform. World Y
// grows upwards while screen Y grows downwards.
type View struct {
	Center geometry.Point
	Zoom   float64
	Width  float64
	Height float64
}

// InvZoom returns world units per screen pixel
func (v View) InvZoom() float64 {
	return 1 / v.Zoom
}

// ScreenToWorld converts a screen position to world coordinates
func (v View) ScreenToWorld(sx, sy float64) geometry.Point {
	return geometry.Point{
		X: v.Center.X + (sx-v.Width/2)/v.Zoom,
		Y: v.Center.Y - (sy-v.Height/2)/v.Zoom,
	}
}

// WorldToScreen converts a world position to screen coordinates
func (v View) WorldToScreen(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: (p.X-v.Center.X)*v.Zoom + v.Width/2,
		Y: v.Height/2 - (p.Y-v.Center.Y)*v.Zoom,
	}
}

// Bounds returns the visible world rectangle
func (v View) Bounds() geometry.Rect {
	return geometry.NewRect(v.ScreenToWorld(0, 0), v.ScreenToWorld(v.Width, v.Height))
}

// HasSize reports whether the view has a drawable area
func (v View) HasSize() bool {
	return v.Width > 0 && v.Height > 0
}
