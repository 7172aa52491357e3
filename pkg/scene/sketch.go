package scene

import (
	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// minSketchStep drops pointer samples closer than this many world units
const minSketchStep = 1e-9

// Sketch adds free-hand polylines to a scene while the viewport is in draw mode
type Sketch struct {
	scene   *Scene
	color   string
	width   float64
	current *Polyline
	subs    []*event.Subscription

	OnStroke event.Signal[Polyline]
}

// NewSketch creates a sketch tool drawing into s
func NewSketch(s *Scene, color string, width float64) *Sketch {
	return &Sketch{scene: s, color: color, width: width}
}

// Drawing reports whether a stroke is in progress
func (k *Sketch) Drawing() bool {
	return k.current != nil
}

// Current returns the stroke in progress
func (k *Sketch) Current() (Polyline, bool) {
	if k.current == nil {
		return Polyline{}, false
	}
	return *k.current, true
}

// Begin starts a stroke at p
func (k *Sketch) Begin(p geometry.Point) {
	k.current = &Polyline{Points: []geometry.Point{p}, Color: k.color, Width: k.width}
}

// Extend adds p to the stroke in progress
func (k *Sketch) Extend(p geometry.Point) {
	if k.current == nil {
		return
	}
	last := k.current.Points[len(k.current.Points)-1]
	if last.Distance(p) <= minSketchStep {
		return
	}
	k.current.Points = append(k.current.Points, p)
}

// End finishes the stroke. Strokes of a single point are dropped.
func (k *Sketch) End() {
	if k.current == nil {
		return
	}
	stroke := *k.current
	k.current = nil
	if len(stroke.Points) < 2 {
		return
	}
	k.scene.AddPolyline(stroke)
	k.OnStroke.Emit(stroke)
}

// Draw paints the stroke in progress
func (k *Sketch) Draw(out surface.Surface, v viewport.View) {
	if k.current == nil || !v.HasSize() {
		return
	}
	drawPolyline(out, v, *k.current)
}

// Attach listens to left-button drags of the viewport in draw mode
func (k *Sketch) Attach(c *viewport.Controller) {
	k.Detach()
	k.subs = []*event.Subscription{
		c.OnPointer.On(func(ev viewport.PointerEvent) {
			if ev.Mode != viewport.ModeDraw || ev.IsRight {
				return
			}
			switch ev.Action {
			case gesture.ActionDown:
				k.Begin(ev.World)
			case gesture.ActionDrag:
				k.Extend(ev.World)
			case gesture.ActionUp:
				k.Extend(ev.World)
				k.End()
			}
		}),
		c.OnModeChanged.On(func(m viewport.ModeChange) {
			if m.From == viewport.ModeDraw {
				k.End()
			}
		}),
	}
}

// Detach stops listening to the viewport
func (k *Sketch) Detach() {
	for _, sub := range k.subs {
		sub.Off()
	}
	k.subs = nil
}
