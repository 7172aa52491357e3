// Package plane wires input, viewport, grid and overlays into a pannable,
// zoomable 2-D plane independent of any GUI toolkit. Hosts feed a
// gesture.Source, tick the frame queue and paint the layers.
package plane

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/surface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// Layer is content painted on top of the grid
type Layer interface {
	Draw(s surface.Surface, v viewport.View)
}

// Options configures a Plane and its composite
type Options struct {
	Viewport    viewport.Options
	Gesture     gesture.Options
	Grid        grid.Options
	Measurement measurement.Options
	Background  color.Color
	SketchColor string
	SketchWidth float64

	// PanBounds keeps the view center inside a world rectangle while
	// dragging; out of it the drag is damped and bounces back on release.
	PanBounds      *geometry.Rect
	// BoundToContent uses the scene bounds when PanBounds is nil
	BoundToContent bool
	Logger         *zap.Logger
}

// DefaultOptions returns the default plane options
func DefaultOptions() Options {
	return Options{
		Viewport:    viewport.DefaultOptions(),
		Gesture:     gesture.DefaultOptions(),
		Grid:        grid.DefaultOptions(),
		Measurement: measurement.DefaultOptions(),
		Background:  color.White,
		SketchColor: "#0077cc",
		SketchWidth: 2,
	}
}

// WithLogger sets log on the options of every component
func (o Options) WithLogger(log *zap.Logger) Options {
	if log == nil {
		log = zap.NewNop()
	}
	o.Logger = log
	o.Viewport.Logger = log
	o.Gesture.Logger = log
	o.Grid.Logger = log
	o.Measurement.Logger = log
	return o
}

// Plane is a gesture engine fed by a source driving a viewport, with the
// scene, sketch and measurement tool attached
type Plane struct {
	Queue      *frame.Queue
	Controller *viewport.Controller
	Engine     *gesture.Engine
	Tool       *measurement.Tool
	Sketch     *scene.Sketch
	Scene      *scene.Scene

	panBounds      *geometry.Rect
	boundToContent bool
	pointerSub     *event.Subscription
}

// New wires a plane showing s
func New(src gesture.Source, s *scene.Scene, opts Options) *Plane {
	opts = opts.WithLogger(opts.Logger)
	if s == nil {
		s = scene.New("")
	}

	p := &Plane{
		Queue: frame.NewQueue(),
		Scene: s,
	}
	p.Controller = viewport.NewController(p.Queue, opts.Viewport)
	p.Controller.SetContentProvider(s)
	p.Engine = gesture.NewEngine(src, p.Queue, opts.Gesture)
	p.Controller.Attach(p.Engine)

	p.Tool = measurement.NewTool(opts.Measurement)
	p.Tool.Attach(p.Controller)
	p.Sketch = scene.NewSketch(s, opts.SketchColor, opts.SketchWidth)
	p.Sketch.Attach(p.Controller)

	p.SetPanLimits(opts.PanBounds, opts.BoundToContent)
	p.pointerSub = p.Engine.OnPointer.On(func(ev gesture.PointerEvent) {
		if ev.Action == gesture.ActionDown {
			p.limitDrag(ev.IsRight)
		}
	})
	return p
}

// SetPanLimits replaces the world rectangle the view center is kept in. A nil
// rectangle with toContent set follows the scene bounds; nil without it
// removes the limit. It takes effect with the next drag.
func (p *Plane) SetPanLimits(bounds *geometry.Rect, toContent bool) {
	p.panBounds = nil
	if bounds != nil {
		b := geometry.NewRect(bounds.Min, bounds.Max)
		p.panBounds = &b
	}
	p.boundToContent = toContent
}

// PanLimits returns the world rectangle the view center is kept in
func (p *Plane) PanLimits() (geometry.Rect, bool) {
	if p.panBounds != nil {
		return *p.panBounds, true
	}
	if p.boundToContent {
		if b, err := p.Scene.ContentBounds(); err == nil {
			return b, true
		}
	}
	return geometry.Rect{}, false
}

// limitDrag converts the world limits into bounds of the engine's virtual
// drag position for the drag that just started. Dragging right moves the
// center left, dragging down moves it up.
func (p *Plane) limitDrag(right bool) {
	limits, ok := p.PanLimits()
	if !ok || (p.Controller.Mode() != viewport.ModeGrab && !right) {
		p.Engine.SetBounds(nil)
		return
	}

	v := p.Engine.Momentum().Position()
	c := p.Controller.Center()
	z := p.Controller.Zoom()
	b := geometry.NewRect(
		geometry.NewPoint(v.X+(c.X-limits.Max.X)*z, v.Y+(limits.Min.Y-c.Y)*z),
		geometry.NewPoint(v.X+(c.X-limits.Min.X)*z, v.Y+(limits.Max.Y-c.Y)*z),
	)
	p.Engine.SetBounds(&b)
}

// Layers returns the content drawn above the grid, bottom first
func (p *Plane) Layers() []Layer {
	return []Layer{p.Scene, p.Sketch, p.Tool}
}

// Draw paints the layers for the current view
func (p *Plane) Draw(s surface.Surface) {
	v := p.Controller.View()
	for _, l := range p.Layers() {
		l.Draw(s, v)
	}
}

// Destroy detaches everything and drops pending frames
func (p *Plane) Destroy() {
	p.pointerSub.Off()
	p.Tool.Detach()
	p.Sketch.Detach()
	p.Engine.Destroy()
	p.Controller.Dispose()
	p.Queue.Reset()
}
