package replay

import (
	"time"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/frame"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// FrameInterval is the virtual time between two animation frames
const FrameInterval = 16 * time.Millisecond

// DefaultMaxFrames bounds the frames run after the last step
const DefaultMaxFrames = 2000

// epoch is the virtual start time of every replay
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Options configures a replay. Scene receives strokes drawn in draw mode;
// nil replays onto an empty scene.
type Options struct {
	Plane     plane.Options
	Scene     *scene.Scene
	MaxFrames int
	Logger    *zap.Logger
}

// DefaultOptions returns the default replay options
func DefaultOptions() Options {
	return Options{
		Plane:     plane.DefaultOptions(),
		MaxFrames: DefaultMaxFrames,
	}
}

// Result is the outcome of a replay
type Result struct {
	State    viewport.State
	View     viewport.View
	Updates  int
	Frames   int
	Clicks   []geometry.Point // world coordinates of clicks
	Duration time.Duration    // virtual time from the first step to idle
	Settled  bool             // false when MaxFrames was hit with work pending

	Measurements []measurement.Measurement // completed, oldest first
	Strokes      []scene.Polyline          // drawn in draw mode
}

type player struct {
	queue *frame.Queue
	now   time.Time
	res   Result
}

func (p *player) clock() time.Time {
	return p.now
}

func (p *player) tick() {
	p.now = p.now.Add(FrameInterval)
	p.queue.Tick(p.now)
	p.res.Frames++
}

// advance runs frames until the virtual clock reaches t
func (p *player) advance(t time.Time) {
	for p.queue.Pending() > 0 && !p.now.Add(FrameInterval).After(t) {
		p.tick()
	}
	if t.After(p.now) {
		p.now = t
	}
}

// Run replays s through a new engine and controller and reports the final
// state. Identical scripts and options always give identical results.
func Run(s *Script, opts Options) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	log := opts.Logger.Named("replay")

	p := &player{now: epoch}

	popts := opts.Plane.WithLogger(opts.Logger)
	popts.Gesture.Clock = p.clock
	pl := plane.New(nil, opts.Scene, popts)
	defer pl.Destroy()
	p.queue = pl.Queue
	engine, ctrl := pl.Engine, pl.Controller

	ctrl.Resize(s.Size.Width, s.Size.Height)
	ctrl.Restore(s.State)

	ctrl.OnUpdate.On(func(viewport.Update) { p.res.Updates++ })
	ctrl.OnPointer.On(func(e viewport.PointerEvent) {
		if e.Action == gesture.ActionClick {
			p.res.Clicks = append(p.res.Clicks, e.World)
		}
	})
	pl.Sketch.OnStroke.On(func(stroke scene.Polyline) {
		p.res.Strokes = append(p.res.Strokes, stroke)
	})

	for _, step := range s.Gestures {
		raw, err := step.raw()
		if err != nil {
			return Result{}, err
		}
		at := epoch.Add(time.Duration(step.At) * time.Millisecond)
		p.advance(at)
		raw.Time = p.now
		engine.Handle(raw)
	}

	for i := 0; i < opts.MaxFrames && p.queue.Pending() > 0; i++ {
		p.tick()
	}

	p.res.Settled = p.queue.Pending() == 0
	p.res.Measurements = completed(pl.Tool)
	p.res.State = ctrl.Snapshot()
	p.res.View = ctrl.View()
	p.res.Duration = p.now.Sub(epoch)
	log.Debug("replay finished",
		zap.Int("steps", len(s.Gestures)),
		zap.Int("frames", p.res.Frames),
		zap.Int("updates", p.res.Updates),
		zap.Bool("settled", p.res.Settled))
	return p.res, nil
}

func completed(t *measurement.Tool) []measurement.Measurement {
	out := t.History()
	if m, ok := t.Current(); ok && m.Completed {
		out = append(out, m)
	}
	return out
}
