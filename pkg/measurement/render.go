package measurement

import (
	"image/color"

	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// Draw paints every measurement onto s using the transform of v
func (t *Tool) Draw(s surface.Surface, v viewport.View) {
	if !v.HasSize() {
		return
	}
	lineColor := surface.MustColor(t.opts.LineColor, color.NRGBA{R: 255, A: 255})
	labelColor := surface.MustColor(t.opts.LabelColor, color.Black)

	for _, m := range t.history {
		t.drawOne(s, v, m, lineColor, labelColor)
	}
	if t.state != StateIdle {
		t.drawOne(s, v, t.current, lineColor, labelColor)
	}
}

func (t *Tool) drawOne(s surface.Surface, v viewport.View, m Measurement, lineColor, labelColor color.Color) {
	a := v.WorldToScreen(m.Start)
	b := v.WorldToScreen(m.End)

	s.StrokeLine(a.X, a.Y, b.X, b.Y, lineColor, t.opts.LineWidth)
	t.drawMarker(s, a, lineColor)
	t.drawMarker(s, b, lineColor)

	if !t.opts.ShowLabels || a == b {
		return
	}
	pos := labelPosition(a, b, t.opts.LabelOffset)
	s.DrawText(m.Label(), pos.X, pos.Y, surface.TextStyle{
		Size:     t.opts.LabelSize,
		Color:    labelColor,
		Align:    surface.AlignCenter,
		Baseline: surface.BaselineMiddle,
	})
}

func (t *Tool) drawMarker(s surface.Surface, p geometry.Point, c color.Color) {
	r := t.opts.MarkerSize
	if r == 0 {
		return
	}
	s.StrokeLine(p.X-r, p.Y, p.X+r, p.Y, c, 1)
	s.StrokeLine(p.X, p.Y-r, p.X, p.Y+r, c, 1)
}

// labelPosition offsets the midpoint of a screen segment perpendicular to
// it, towards the top of the screen
func labelPosition(a, b geometry.Point, offset float64) geometry.Point {
	mid := a.Midpoint(b)
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return mid
	}
	n := geometry.NewPoint(d.Y/length, -d.X/length)
	if n.Y > 0 || (n.Y == 0 && n.X < 0) {
		n = n.Mul(-1)
	}
	return geometry.NewPoint(mid.X+n.X*offset, mid.Y+n.Y*offset)
}
