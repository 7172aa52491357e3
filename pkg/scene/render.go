package scene

import (
	"image/color"

	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

const (
	markerSize       = 5.0
	defaultLineWidth = 1.5
	labelSize        = 11.0
)

var (
	defaultMarkerColor = color.NRGBA{R: 0, G: 119, B: 204, A: 255}
	defaultLineColor   = color.NRGBA{R: 51, G: 51, B: 51, A: 255}
)

// Draw paints the scene onto s using the transform of v
func (s *Scene) Draw(out surface.Surface, v viewport.View) {
	if !v.HasSize() {
		return
	}
	for _, p := range s.Polylines {
		drawPolyline(out, v, p)
	}

	for _, m := range s.Markers {
		c := surface.MustColor(m.Color, defaultMarkerColor)
		p := v.WorldToScreen(m.Position)
		out.StrokeLine(p.X-markerSize, p.Y-markerSize, p.X+markerSize, p.Y+markerSize, c, 2)
		out.StrokeLine(p.X-markerSize, p.Y+markerSize, p.X+markerSize, p.Y-markerSize, c, 2)
		if m.Label != "" {
			out.DrawText(m.Label, p.X+markerSize+2, p.Y, surface.TextStyle{
				Size:     labelSize,
				Color:    c,
				Align:    surface.AlignLeft,
				Baseline: surface.BaselineMiddle,
			})
		}
	}
}

func drawPolyline(out surface.Surface, v viewport.View, p Polyline) {
	c := surface.MustColor(p.Color, defaultLineColor)
	w := p.Width
	if w <= 0 {
		w = defaultLineWidth
	}
	n := len(p.Points)
	for i := 1; i < n; i++ {
		a := v.WorldToScreen(p.Points[i-1])
		b := v.WorldToScreen(p.Points[i])
		out.StrokeLine(a.X, a.Y, b.X, b.Y, c, w)
	}
	if p.Closed && n > 2 {
		a := v.WorldToScreen(p.Points[n-1])
		b := v.WorldToScreen(p.Points[0])
		out.StrokeLine(a.X, a.Y, b.X, b.Y, c, w)
	}
}
