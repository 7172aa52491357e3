// Package ebapp is the goplane viewer built on ebiten. It is the host with
// multi-touch input, so pinch zoom works on touch screens.
package ebapp

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
	"github.com/philipparndt/goplane/pkg/watcher"
)

const reloadDebounce = 300 * time.Millisecond

// Options configures the ebiten viewer
type Options struct {
	Config    *config.Config
	Viper     *viper.Viper
	ScenePath string
	StatePath string
	Watch     bool
	Logger    *zap.Logger
}

// Game implements ebiten.Game around a plane
type Game struct {
	opts   Options
	cfg    *config.Config
	log    *zap.Logger
	poller *gesture.Poller
	plane  *plane.Plane
	comp   *plane.Composite
	keys   shortcut.Target

	buffer   *ebiten.Image
	uploaded bool
	stale    bool
	width    int
	height   int
	cursor   image.Point
	last     string
	pressed  []ebiten.Key
	touchIDs []ebiten.TouchID

	watcher     *watcher.FileWatcher
	configDirty atomic.Bool
	sceneDirty  atomic.Bool
}

var _ ebiten.Game = (*Game)(nil)

// New builds the game without opening a window
func New(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Config == nil {
		opts.Config = config.NewDefaultConfig()
	}

	s := scene.New("")
	if opts.ScenePath != "" {
		loaded, err := scene.Parse(opts.ScenePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		s = loaded
	}

	g := &Game{
		opts:   opts,
		cfg:    opts.Config,
		log:    opts.Logger.Named("ebiten"),
		poller: gesture.NewPoller(),
	}
	popts := g.cfg.PlaneOptions(opts.Logger)
	g.plane = plane.New(g.poller, s, popts)

	comp, err := plane.NewComposite(1, 1, popts.Background, popts.Grid, g.plane.Layers()...)
	if err != nil {
		g.plane.Destroy()
		return nil, err
	}
	g.comp = comp
	g.plane.Controller.AttachRenderer(comp)
	g.keys = shortcut.Target{Controller: g.plane.Controller, Grid: comp.Grid(), Tool: g.plane.Tool}

	comp.OnDrawn.On(func(image.Image) { g.uploaded = false })
	g.plane.Tool.OnUpdate.On(func(measurement.Measurement) { g.stale = true })
	g.plane.Tool.OnCancel.On(func(measurement.Measurement) { g.stale = true })
	g.plane.Tool.OnComplete.On(func(m measurement.Measurement) {
		g.last = m.Label()
		g.stale = true
	})
	s.OnChange.On(func(*scene.Scene) { g.stale = true })
	g.plane.Controller.OnPointer.On(func(ev viewport.PointerEvent) {
		if ev.Mode == viewport.ModeDraw && ev.Action == gesture.ActionDrag {
			g.stale = true
		}
	})

	if opts.StatePath != "" {
		state, ok, err := viewport.LoadState(opts.StatePath)
		if err != nil {
			g.log.Warn("failed to restore viewport state", zap.Error(err))
		} else if ok {
			g.plane.Controller.Restore(state)
		}
	}
	return g, nil
}

// Plane returns the plane shown by the game
func (g *Game) Plane() *plane.Plane {
	return g.plane
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	now := time.Now()
	g.applyReloads()

	x, y := ebiten.CursorPosition()
	g.cursor = image.Pt(x, y)
	g.poller.Update(g.readDevice(now))

	g.pressed = appendPressedKeys(g.pressed[:0])
	if quitRequested(g.pressed) {
		return ebiten.Termination
	}
	g.handleKeys(g.pressed)

	g.plane.Queue.Tick(now)
	if g.stale {
		g.stale = false
		g.comp.Refresh()
	}
	return nil
}

// Layout implements ebiten.Game. The plane always fills the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.plane.Controller.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Draw implements ebiten.Game. The composite is uploaded only after it
// was repainted.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.uploaded || g.buffer == nil {
		rgba := g.comp.Surface().RGBA()
		size := rgba.Bounds().Size()
		if g.buffer == nil || g.buffer.Bounds().Size() != size {
			if g.buffer != nil {
				g.buffer.Deallocate()
			}
			g.buffer = ebiten.NewImage(size.X, size.Y)
		}
		g.buffer.WritePixels(rgba.Pix)
		g.uploaded = true
	}
	screen.DrawImage(g.buffer, nil)
	g.drawStatus(screen)
}

func (g *Game) handleKeys(keys []ebiten.Key) {
	for _, k := range keys {
		a := actionFor(k)
		if a == shortcut.ClearMeasurements {
			g.last = ""
			g.stale = true
		}
		if g.keys.Apply(a) {
			g.log.Debug("shortcut", zap.Stringer("action", a))
		}
	}
}

// Close saves the viewport state and releases resources
func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}
	if g.opts.StatePath != "" {
		if err := viewport.SaveState(g.opts.StatePath, g.plane.Controller.Snapshot()); err != nil {
			g.log.Warn("failed to save viewport state", zap.Error(err))
		}
	}
	g.plane.Destroy()
	g.comp.Close()
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	if opts.Watch {
		if err := g.setupFileWatcher(); err != nil {
			g.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}
