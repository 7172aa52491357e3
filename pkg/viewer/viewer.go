// Package viewer hosts a pannable, zoomable 2-D plane in a fyne widget.
package viewer

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// Options configures a Viewer
type Options = plane.Options

// DefaultOptions returns the default viewer options
func DefaultOptions() Options {
	return plane.DefaultOptions()
}

// Viewer is a fyne widget showing the grid, a scene and the measurement
// overlay. Pointer input drives a gesture engine which drives the viewport.
type Viewer struct {
	widget.BaseWidget

	plane   *plane.Plane
	queue   *frame.Queue
	driver  *frame.Driver
	engine  *gesture.Engine
	ctrl    *viewport.Controller
	comp    *plane.Composite
	tool    *measurement.Tool
	sketch  *scene.Sketch
	scene   *scene.Scene
	image   *canvas.Image
	log     *zap.Logger
	subs    []*event.Subscription
	handler func(gesture.RawEvent)

	pressed  bool
	lastDrag fyne.Position
	repaint  frame.ID
}

var _ gesture.Source = (*Viewer)(nil)
var _ fyne.Draggable = (*Viewer)(nil)
var _ fyne.Scrollable = (*Viewer)(nil)
var _ desktop.Mouseable = (*Viewer)(nil)
var _ desktop.Hoverable = (*Viewer)(nil)
var _ desktop.Cursorable = (*Viewer)(nil)

// New creates a viewer showing s
func New(s *scene.Scene, opts Options) (*Viewer, error) {
	opts = opts.WithLogger(opts.Logger)
	if s == nil {
		s = scene.New("")
	}
	log := opts.Logger

	v := &Viewer{
		scene: s,
		log:   log.Named("viewer"),
	}
	v.plane = plane.New(v, s, opts)
	v.queue = v.plane.Queue
	v.ctrl = v.plane.Controller
	v.engine = v.plane.Engine
	v.tool = v.plane.Tool
	v.sketch = v.plane.Sketch
	v.driver = frame.NewDriver(v.queue, frame.DefaultInterval, fyne.Do)

	comp, err := plane.NewComposite(1, 1, opts.Background, opts.Grid, v.plane.Layers()...)
	if err != nil {
		return nil, err
	}
	v.comp = comp
	v.ctrl.AttachRenderer(comp)

	v.image = canvas.NewImageFromImage(comp.Image())
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScaleFastest

	v.subs = []*event.Subscription{
		comp.OnDrawn.On(func(img image.Image) {
			v.image.Image = img
			v.image.Refresh()
		}),
		v.tool.OnUpdate.On(func(measurement.Measurement) { v.invalidate() }),
		v.tool.OnComplete.On(func(measurement.Measurement) { v.invalidate() }),
		v.tool.OnCancel.On(func(measurement.Measurement) { v.invalidate() }),
		s.OnChange.On(func(*scene.Scene) { v.invalidate() }),
		v.ctrl.OnPointer.On(func(ev viewport.PointerEvent) {
			if ev.Mode == viewport.ModeDraw && ev.Action == gesture.ActionDrag {
				v.invalidate()
			}
		}),
	}

	v.ExtendBaseWidget(v)
	v.driver.Start()
	return v, nil
}

// Controller returns the viewport controller
func (v *Viewer) Controller() *viewport.Controller {
	return v.ctrl
}

// Engine returns the gesture engine
func (v *Viewer) Engine() *gesture.Engine {
	return v.engine
}

// Grid returns the grid renderer
func (v *Viewer) Grid() *grid.Renderer {
	return v.comp.Grid()
}

// Measurement returns the measurement tool
func (v *Viewer) Measurement() *measurement.Tool {
	return v.tool
}

// Scene returns the displayed scene
func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// Plane returns the toolkit-independent wiring behind the widget
func (v *Viewer) Plane() *plane.Plane {
	return v.plane
}

// Composite returns the raster composite
func (v *Viewer) Composite() *plane.Composite {
	return v.comp
}

// Subscribe implements gesture.Source
func (v *Viewer) Subscribe(handler func(gesture.RawEvent)) func() {
	v.handler = handler
	return func() { v.handler = nil }
}

// invalidate repaints on the next frame, merging repeated requests
func (v *Viewer) invalidate() {
	if v.repaint != 0 {
		return
	}
	v.repaint = v.queue.RequestFrame(func(time.Time) {
		v.repaint = 0
		v.comp.Refresh()
	})
}

func (v *Viewer) emit(ev gesture.RawEvent) {
	if v.handler != nil {
		v.handler(ev)
	}
}

func at(p fyne.Position) *geometry.Point {
	return gesture.At(float64(p.X), float64(p.Y))
}

// MouseDown implements desktop.Mouseable
func (v *Viewer) MouseDown(e *desktop.MouseEvent) {
	v.pressed = true
	v.lastDrag = e.Position
	button := gesture.ButtonLeft
	switch e.Button {
	case desktop.MouseButtonSecondary:
		button = gesture.ButtonRight
	case desktop.MouseButtonTertiary:
		button = gesture.ButtonMiddle
	}
	v.emit(gesture.RawEvent{Kind: gesture.PointerDown, Position: at(e.Position), Button: button})
}

// MouseUp implements desktop.Mouseable
func (v *Viewer) MouseUp(e *desktop.MouseEvent) {
	if !v.pressed {
		return
	}
	v.pressed = false
	v.emit(gesture.RawEvent{Kind: gesture.PointerUp, Position: at(e.Position)})
}

// Dragged implements fyne.Draggable
func (v *Viewer) Dragged(e *fyne.DragEvent) {
	v.lastDrag = e.Position
	v.emit(gesture.RawEvent{Kind: gesture.PointerMove, Position: at(e.Position)})
}

// DragEnd implements fyne.Draggable. Some drivers end a drag without a
// mouse up, so the release is synthesized at the last drag position.
func (v *Viewer) DragEnd() {
	if !v.pressed {
		return
	}
	v.pressed = false
	v.emit(gesture.RawEvent{Kind: gesture.PointerUp, Position: at(v.lastDrag)})
}

// MouseIn implements desktop.Hoverable
func (v *Viewer) MouseIn(e *desktop.MouseEvent) {
	v.emit(gesture.RawEvent{Kind: gesture.PointerMove, Position: at(e.Position)})
}

// MouseMoved implements desktop.Hoverable
func (v *Viewer) MouseMoved(e *desktop.MouseEvent) {
	v.emit(gesture.RawEvent{Kind: gesture.PointerMove, Position: at(e.Position)})
}

// MouseOut implements desktop.Hoverable
func (v *Viewer) MouseOut() {}

// Scrolled implements fyne.Scrollable. fyne reports scrolling up as a
// positive delta, the opposite of a wheel delta.
func (v *Viewer) Scrolled(e *fyne.ScrollEvent) {
	v.emit(gesture.RawEvent{
		Kind:      gesture.Wheel,
		Position:  at(e.Position),
		DeltaY:    -float64(e.Scrolled.DY),
		DeltaMode: gesture.WheelPixel,
	})
}

// Cursor implements desktop.Cursorable
func (v *Viewer) Cursor() desktop.Cursor {
	switch v.ctrl.Cursor() {
	case viewport.CursorCrosshair:
		return desktop.CrosshairCursor
	case viewport.CursorGrab, viewport.CursorGrabbing:
		return desktop.PointerCursor
	default:
		return desktop.DefaultCursor
	}
}

// Destroy stops the frame driver and releases the viewport. It is safe to
// call more than once.
func (v *Viewer) Destroy() {
	v.driver.Stop()
	for _, sub := range v.subs {
		sub.Off()
	}
	v.subs = nil
	v.plane.Destroy()
}

// CreateRenderer implements fyne.Widget
func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	return &viewerRenderer{viewer: v}
}

// viewerRenderer implements fyne.WidgetRenderer
type viewerRenderer struct {
	viewer *Viewer
}

func (r *viewerRenderer) Layout(size fyne.Size) {
	r.viewer.image.Resize(size)
	r.viewer.image.Move(fyne.NewPos(0, 0))
	r.viewer.ctrl.Resize(float64(size.Width), float64(size.Height))
}

func (r *viewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *viewerRenderer) Refresh() {
	canvas.Refresh(r.viewer.image)
}

func (r *viewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.image}
}

func (r *viewerRenderer) Destroy() {}
