// Package grid draws a labelled reference grid for the current viewport
// transform. Every redraw recomputes both axes from scratch.
package grid

import (
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// Renderer owns a drawing surface and redraws the grid onto it
type Renderer struct {
	surface surface.Surface
	opts    Options
	log     *zap.Logger

	lastView viewport.View
	hasView  bool

	OnChange event.Signal[Settings]
}

var _ viewport.Redrawer = (*Renderer)(nil)

// NewRenderer creates a renderer drawing onto s
func NewRenderer(s surface.Surface, opts Options) *Renderer {
	opts = opts.normalize()
	return &Renderer{
		surface: s,
		opts:    opts,
		log:     opts.Logger.Named("grid"),
	}
}

// Surface returns the surface the grid draws on
func (r *Renderer) Surface() surface.Surface {
	return r.surface
}

// Compute lays out both axes for a view without drawing
func (r *Renderer) Compute(v viewport.View) Pair {
	inv := v.InvZoom()
	p := Pair{
		X: layout("x", v.Width, inv, v.Center.X, r.opts.X, r.opts.Spacing),
		Y: layout("y", v.Height, inv, v.Center.Y, r.opts.Y, r.opts.Spacing),
	}
	r.fill(&p.X, r.opts.X, &p)
	r.fill(&p.Y, r.opts.Y, &p)
	return p
}

// fill computes line values, colors, ticks and labels of one axis.
// Ticks and labels depend on the opposite axis, which is already laid out.
func (r *Renderer) fill(s *AxisState, axis Axis, p *Pair) {
	opposite := p.Opposite(s)
	pad := r.opts.Padding
	s.Padding = [4]float64{pad, pad, pad, pad}
	s.FontSize = r.opts.FontSize
	if s.Name == "x" {
		s.TickAlign = -1
	} else {
		s.TickAlign = 1
	}

	switch {
	case len(axis.Lines) > 0:
		s.Lines = nil
		for _, v := range axis.Lines {
			if s.Visible(v) {
				s.Lines = append(s.Lines, v)
			}
		}
	case axis.Generator != nil:
		s.Lines = axis.Generator(*s)
	default:
		s.Lines = evenLines(s.Offset, s.Range, s.Step)
	}

	gridColor := surface.WithOpacity(surface.MustColor(r.opts.Color, nil), r.opts.Opacity)

	n := len(s.Lines)
	s.Colors = make([]color.Color, n)
	s.Ticks = make([]float64, n)
	s.Labels = make([]string, n)
	for i, v := range s.Lines {
		if axis.Color != nil {
			s.Colors[i] = axis.Color(v, *s)
		} else {
			s.Colors[i] = gridColor
		}

		if !sameValue(v, opposite.Origin, s.Step) {
			s.Ticks[i] = r.opts.TickSize
		}

		// The x axis labels the shared origin
		if s.Name == "y" && sameValue(v, s.Origin, s.Step) {
			continue
		}
		if axis.Format != nil {
			s.Labels[i] = axis.Format(v, *s)
		} else {
			s.Labels[i] = FormatValue(v, s.Step)
		}
	}
}

// Redraw recomputes and draws the grid for v
func (r *Renderer) Redraw(v viewport.View) {
	r.lastView = v
	r.hasView = true
	r.draw()
}

func (r *Renderer) draw() {
	if !r.hasView {
		return
	}
	v := r.lastView
	if !v.HasSize() {
		return
	}
	r.fitSurface(v)
	r.surface.Clear()
	if !r.opts.Visible {
		return
	}

	p := r.Compute(v)
	r.drawLines(&p.X, &p)
	r.drawLines(&p.Y, &p)
	r.drawTicks(&p.X, &p)
	r.drawTicks(&p.Y, &p)
	r.drawAxis(&p.X)
	r.drawAxis(&p.Y)
	if r.opts.ShowLabels {
		r.drawLabels(&p.X, &p)
		r.drawLabels(&p.Y, &p)
	}
}

func (r *Renderer) fitSurface(v viewport.View) {
	w, h := int(math.Ceil(v.Width)), int(math.Ceil(v.Height))
	if sw, sh := r.surface.Size(); sw == w && sh == h {
		return
	}
	if err := r.surface.Resize(w, h); err != nil {
		r.log.Debug("surface resize failed", zap.Error(err))
	}
}

// segment returns the screen line of value v spanning the opposite axis
func segment(s *AxisState, opposite *AxisState, v float64) (x1, y1, x2, y2 float64) {
	pos := s.Position(v)
	if s.Name == "x" {
		return pos, 0, pos, opposite.Size
	}
	return 0, pos, opposite.Size, pos
}

func (r *Renderer) drawLines(s *AxisState, p *Pair) {
	opposite := p.Opposite(s)
	axisColor := r.axisColor()
	for i, v := range s.Lines {
		if s.Colors[i] == nil {
			continue
		}
		if axisColor != nil && sameValue(v, s.Origin, s.Step) {
			continue
		}
		x1, y1, x2, y2 := segment(s, opposite, v)
		r.surface.StrokeLine(x1, y1, x2, y2, s.Colors[i], r.opts.LineWidth)
	}
}

// axisCrossing returns where the opposite axis line sits on screen,
// clamped into view
func axisCrossing(opposite *AxisState) float64 {
	return clampSwap(opposite.Position(opposite.Origin), 0, opposite.Size)
}

func (r *Renderer) drawTicks(s *AxisState, p *Pair) {
	opposite := p.Opposite(s)
	tickColor := r.axisColor()
	if tickColor == nil {
		return
	}
	cross := axisCrossing(opposite)
	for i, v := range s.Lines {
		if s.Ticks[i] == 0 {
			continue
		}
		pos := s.Position(v)
		tick := s.Ticks[i] * s.TickAlign
		if s.Name == "x" {
			r.surface.StrokeLine(pos, cross, pos, cross+tick, tickColor, r.opts.LineWidth)
		} else {
			r.surface.StrokeLine(cross, pos, cross+tick, pos, tickColor, r.opts.LineWidth)
		}
	}
}

func (r *Renderer) drawAxis(s *AxisState) {
	c := r.axisColor()
	if c == nil || !s.Visible(s.Origin) {
		return
	}
	pos := s.Position(s.Origin)
	if s.Name == "x" {
		r.surface.StrokeLine(pos, 0, pos, r.lastView.Height, c, r.opts.AxisWidth)
	} else {
		r.surface.StrokeLine(0, pos, r.lastView.Width, pos, c, r.opts.AxisWidth)
	}
}

// drawLabels places labels on the side of the axis opposite to the ticks,
// pushed inward when they would be clipped
func (r *Renderer) drawLabels(s *AxisState, p *Pair) {
	opposite := p.Opposite(s)
	labelColor := surface.MustColor(r.opts.LabelColor, color.Black)
	cross := axisCrossing(opposite)
	gap := s.TickAlign * -1 * DefaultLabelGap

	for i, v := range s.Lines {
		label := s.Labels[i]
		if label == "" {
			continue
		}
		w, h := surface.MeasureText(r.surface, label, s.FontSize)
		pos := s.Position(v)

		if s.Name == "x" {
			x := clampSwap(pos, s.Padding[3]+w/2, s.Size-s.Padding[1]-w/2)
			y := clampSwap(cross+gap, s.Padding[0], opposite.Size-s.Padding[2]-h)
			r.surface.DrawText(label, x, y, surface.TextStyle{
				Size:     s.FontSize,
				Color:    labelColor,
				Align:    surface.AlignCenter,
				Baseline: surface.BaselineTop,
			})
			continue
		}

		x := clampSwap(cross+gap, s.Padding[3]+w, opposite.Size-s.Padding[1])
		y := clampSwap(pos, s.Padding[0]+h/2, s.Size-s.Padding[2]-h/2)
		r.surface.DrawText(label, x, y, surface.TextStyle{
			Size:     s.FontSize,
			Color:    labelColor,
			Align:    surface.AlignRight,
			Baseline: surface.BaselineMiddle,
		})
	}
}

func (r *Renderer) axisColor() color.Color {
	c, ok := surface.ParseColor(r.opts.AxisColor)
	if !ok {
		return nil
	}
	return c
}
