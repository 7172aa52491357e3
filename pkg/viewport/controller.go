// Package viewport owns the zoom, pan and mode state of a 2-D plane and the
// transform between screen and world coordinates.
package viewport

import (
	"math"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
)

// maxZoomIntent bounds a single gesture's zoom change to this fraction of the
// viewport height
const maxZoomIntent = 0.75

// Update is emitted after every state change
type Update struct {
	View     View
	DX, DY   float64 // pan delta of the gesture that caused the update
	X, Y     float64 // cursor position in screen coordinates
	IsRight  bool
	Deferred bool // true for the second emission after an imperative change
}

// PointerEvent is a gesture pointer event with world coordinates attached
type PointerEvent struct {
	Action  gesture.PointerAction
	Screen  geometry.Point
	World   geometry.Point
	IsRight bool
	Mode    Mode
}

// ModeChange describes a mode transition
type ModeChange struct {
	From Mode
	To   Mode
}

// Redrawer is redrawn with the current view on every update
type Redrawer interface {
	Redraw(v View)
}

// ContentProvider supplies the bounds of drawn content for FitBounds
type ContentProvider interface {
	ContentBounds() (geometry.Rect, error)
}

// Controller holds the viewport state. It is not safe for concurrent use;
// every method runs on the UI thread.
type Controller struct {
	opts  Options
	sched frame.Scheduler
	log   *zap.Logger

	center  geometry.Point
	zoom    float64
	minZoom float64
	maxZoom float64
	mode    Mode
	width   float64
	height  float64

	cursor   geometry.Point
	dx, dy   float64
	isRight  bool
	panning  bool
	ready    bool
	disposed bool

	engine     *gesture.Engine
	engineSubs []*event.Subscription
	renderSubs []*event.Subscription
	content    ContentProvider

	OnUpdate      event.Signal[Update]
	OnPanning     event.Signal[bool]
	OnModeChanged event.Signal[ModeChange]
	OnReady       event.Signal[View]
	OnPointer     event.Signal[PointerEvent]
}

// NewController creates a controller. Out-of-range options are corrected.
func NewController(sched frame.Scheduler, opts Options) *Controller {
	opts, fixed := opts.normalize()
	c := &Controller{
		opts:    opts,
		sched:   sched,
		log:     opts.Logger.Named("viewport"),
		center:  opts.Center,
		zoom:    opts.Zoom,
		minZoom: opts.MinZoom,
		maxZoom: opts.MaxZoom,
		mode:    opts.Mode,
	}
	if len(fixed) > 0 {
		c.log.Debug("corrected viewport options", zap.Strings("fields", fixed))
	}
	return c
}

// View returns the current transform
func (c *Controller) View() View {
	return View{Center: c.center, Zoom: c.zoom, Width: c.width, Height: c.height}
}

// Zoom returns the current zoom factor (screen pixels per world unit)
func (c *Controller) Zoom() float64 {
	return c.zoom
}

// Center returns the world point at the middle of the viewport
func (c *Controller) Center() geometry.Point {
	return c.center
}

// ZoomLimits returns the minimum and maximum zoom
func (c *Controller) ZoomLimits() (float64, float64) {
	return c.minZoom, c.maxZoom
}

// Mode returns the current interaction mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// Ready reports whether the viewport has received a positive size
func (c *Controller) Ready() bool {
	return c.ready
}

// Panning reports whether a pan drag or its momentum is in progress
func (c *Controller) Panning() bool {
	return c.panning
}

// ZoomEnabled reports whether gestures may change the zoom
func (c *Controller) ZoomEnabled() bool {
	return c.opts.ZoomEnabled
}

// SelectionEnabled reports whether drags should select content
func (c *Controller) SelectionEnabled() bool {
	return c.opts.SelectEnabled && c.mode == ModeSelect
}

// DrawingEnabled reports whether drags should be handed to a drawing tool
func (c *Controller) DrawingEnabled() bool {
	return c.mode == ModeDraw
}

// Cursor returns the pointer style for the current mode and pan state
func (c *Controller) Cursor() Cursor {
	if c.panning && (c.isRight || c.mode == ModeGrab) {
		return CursorGrabbing
	}
	switch c.mode {
	case ModeGrab:
		return CursorGrab
	case ModeMeasure, ModeDraw:
		return CursorCrosshair
	default:
		return CursorDefault
	}
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Controller) ScreenToWorld(x, y float64) geometry.Point {
	return c.View().ScreenToWorld(x, y)
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Controller) WorldToScreen(p geometry.Point) geometry.Point {
	return c.View().WorldToScreen(p)
}

// GetBounds returns the visible world rectangle
func (c *Controller) GetBounds() geometry.Rect {
	return c.View().Bounds()
}

// Resize sets the viewport size in screen pixels. The first positive size
// emits ready.
func (c *Controller) Resize(width, height float64) {
	if c.disposed {
		return
	}
	if width < 0 || math.IsNaN(width) {
		width = 0
	}
	if height < 0 || math.IsNaN(height) {
		height = 0
	}
	c.width, c.height = width, height
	if c.engine != nil {
		c.engine.SetPageHeight(height)
	}

	if !c.ready && width > 0 && height > 0 {
		c.ready = true
		c.log.Debug("viewport ready", zap.Float64("width", width), zap.Float64("height", height))
		c.OnReady.Emit(c.View())
	}
	c.emitUpdate(false)
}

// ApplyGesture applies a normalized gesture: pan when grabbing or dragging
// with the right button, and zoom around the cursor.
func (c *Controller) ApplyGesture(e gesture.Event) {
	if c.disposed {
		return
	}

	prevInv := 1 / c.zoom
	curInv := prevInv
	if c.opts.ZoomEnabled && c.height > 0 {
		limit := maxZoomIntent * c.height
		norm := clamp(-e.DZ, -limit, limit) / c.height
		curInv = clamp(prevInv*(1-norm), 1/c.maxZoom, 1/c.minZoom)
	}

	if c.mode == ModeGrab || e.IsRight {
		c.center.X -= prevInv * e.DX
		c.center.Y += prevInv * e.DY
	}

	if c.opts.ZoomEnabled && c.width > 0 && c.height > 0 {
		tx := e.X/c.width - 0.5
		c.center.X -= c.width * (curInv - prevInv) * tx
		ty := 0.5 - e.Y/c.height
		c.center.Y -= c.height * (curInv - prevInv) * ty
	}

	c.zoom = clamp(1/curInv, c.minZoom, c.maxZoom)
	c.dx, c.dy = e.DX, e.DY
	c.cursor = geometry.NewPoint(e.X, e.Y)
	c.isRight = e.IsRight

	c.emitUpdate(false)
}

// SetZoom sets the zoom factor, clamped to the zoom limits
func (c *Controller) SetZoom(z float64) {
	if c.disposed || math.IsNaN(z) {
		return
	}
	c.zoom = clamp(z, c.minZoom, c.maxZoom)
	c.settle()
}

// ZoomIn increases the zoom by step. A non-positive step uses the configured step.
func (c *Controller) ZoomIn(step float64) {
	c.SetZoom(c.zoom + c.step(step))
}

// ZoomOut decreases the zoom by step. A non-positive step uses the configured step.
func (c *Controller) ZoomOut(step float64) {
	c.SetZoom(c.zoom - c.step(step))
}

func (c *Controller) step(step float64) float64 {
	if step <= 0 || math.IsNaN(step) {
		return c.opts.ZoomStep
	}
	return step
}

// SetZoomLimits replaces the zoom limits and clamps the current zoom
func (c *Controller) SetZoomLimits(minZoom, maxZoom float64) {
	if c.disposed {
		return
	}
	opts := c.opts
	opts.MinZoom, opts.MaxZoom, opts.Zoom = minZoom, maxZoom, c.zoom
	opts, fixed := opts.normalize()
	if len(fixed) > 0 {
		c.log.Debug("corrected zoom limits", zap.Strings("fields", fixed))
	}
	c.opts.MinZoom, c.opts.MaxZoom = opts.MinZoom, opts.MaxZoom
	c.minZoom, c.maxZoom = opts.MinZoom, opts.MaxZoom
	c.zoom = clamp(c.zoom, c.minZoom, c.maxZoom)
	c.settle()
}

// PanTo centers the viewport on a world position
func (c *Controller) PanTo(x, y float64) {
	if c.disposed || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	c.center = geometry.NewPoint(x, y)
	c.settle()
}

// Pan moves the center by a world-space offset
func (c *Controller) Pan(dx, dy float64) {
	if c.disposed || math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	c.center = c.center.Add(geometry.NewPoint(dx, dy))
	c.settle()
}

// ResetView restores the initial zoom and centers on the origin
func (c *Controller) ResetView() {
	if c.disposed {
		return
	}
	c.zoom = clamp(c.opts.Zoom, c.minZoom, c.maxZoom)
	c.center = geometry.Point{}
	c.settle()
}

// SetContentProvider sets the collaborator used by FitBounds
func (c *Controller) SetContentProvider(p ContentProvider) {
	c.content = p
}

// FitBounds fits the registered content into the viewport with padding in
// world units. Without content or a size it does nothing.
func (c *Controller) FitBounds(padding float64) {
	if c.disposed || c.content == nil {
		return
	}
	bounds, err := c.content.ContentBounds()
	if err != nil {
		c.log.Debug("fit bounds skipped", zap.Error(err))
		return
	}
	c.FitRect(bounds, padding)
}

// FitRect fits a world rectangle into the viewport
func (c *Controller) FitRect(r geometry.Rect, padding float64) {
	if c.disposed || r.IsEmpty() || !c.View().HasSize() {
		return
	}
	if padding < 0 || math.IsNaN(padding) {
		padding = 0
	}
	z := math.Min(c.width/(r.Width()+padding), c.height/(r.Height()+padding))
	if math.IsNaN(z) {
		z = c.maxZoom
	}
	c.zoom = clamp(z, c.minZoom, c.maxZoom)
	c.center = r.Center()
	c.settle()
}

// SetMode switches the interaction mode. Any mode may follow any other.
func (c *Controller) SetMode(m Mode) {
	if c.disposed || !m.Valid() || m == c.mode {
		return
	}
	change := ModeChange{From: c.mode, To: m}
	c.mode = m
	c.log.Debug("mode changed", zap.Stringer("from", change.From), zap.Stringer("to", change.To))
	c.OnModeChanged.Emit(change)
}

// Snapshot returns the persistable state
func (c *Controller) Snapshot() State {
	return State{Center: c.center, Zoom: c.zoom, Mode: c.mode}
}

// Restore applies a snapshot. The zoom is clamped and an invalid mode is ignored.
func (c *Controller) Restore(s State) {
	if c.disposed {
		return
	}
	if s.Center.IsFinite() {
		c.center = s.Center
	}
	if s.Zoom > 0 {
		c.zoom = clamp(s.Zoom, c.minZoom, c.maxZoom)
	}
	c.SetMode(s.Mode)
	c.settle()
}

// Attach subscribes to a gesture engine, replacing any previous one
func (c *Controller) Attach(e *gesture.Engine) {
	if c.disposed {
		return
	}
	c.detachEngine()
	c.engine = e
	e.SetPageHeight(c.height)
	c.engineSubs = []*event.Subscription{
		e.OnGesture.On(c.ApplyGesture),
		e.OnPointer.On(c.handlePointer),
		e.OnStop.On(c.handleStop),
	}
	c.log.Debug("gesture engine attached")
}

// AttachRenderer redraws r on every update, starting now if the viewport is ready
func (c *Controller) AttachRenderer(r Redrawer) {
	if c.disposed {
		return
	}
	c.renderSubs = append(c.renderSubs, c.OnUpdate.On(func(u Update) { r.Redraw(u.View) }))
	if c.ready {
		r.Redraw(c.View())
	}
}

func (c *Controller) handlePointer(p gesture.PointerEvent) {
	if p.Action == gesture.ActionDown && (c.mode == ModeGrab || p.IsRight) && !c.panning {
		c.panning = true
		c.isRight = p.IsRight
		c.OnPanning.Emit(true)
	}

	screen := geometry.NewPoint(p.X, p.Y)
	c.OnPointer.Emit(PointerEvent{
		Action:  p.Action,
		Screen:  screen,
		World:   c.ScreenToWorld(p.X, p.Y),
		IsRight: p.IsRight,
		Mode:    c.mode,
	})
}

func (c *Controller) handleStop(gesture.Stop) {
	if c.panning {
		c.panning = false
		c.OnPanning.Emit(false)
	}
}

// settle emits an update now and once more after the current callback
// has finished, recentring the cursor on the viewport midpoint.
func (c *Controller) settle() {
	c.cursor = geometry.NewPoint(c.width/2, c.height/2)
	c.dx, c.dy = 0, 0
	c.emitUpdate(false)
	c.sched.Defer(func() {
		if !c.disposed {
			c.emitUpdate(true)
		}
	})
}

func (c *Controller) emitUpdate(deferred bool) {
	c.OnUpdate.Emit(Update{
		View:     c.View(),
		DX:       c.dx,
		DY:       c.dy,
		X:        c.cursor.X,
		Y:        c.cursor.Y,
		IsRight:  c.isRight,
		Deferred: deferred,
	})
}

func (c *Controller) detachEngine() {
	for _, sub := range c.engineSubs {
		sub.Off()
	}
	c.engineSubs = nil
	c.engine = nil
}

// Dispose detaches from the gesture engine and renderers and drops all
// observers. It is safe to call more than once.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.detachEngine()
	for _, sub := range c.renderSubs {
		sub.Off()
	}
	c.renderSubs = nil
	c.content = nil

	c.OnUpdate.Clear()
	c.OnPanning.Clear()
	c.OnModeChanged.Clear()
	c.OnReady.Clear()
	c.OnPointer.Clear()
	c.log.Debug("viewport disposed")
}
