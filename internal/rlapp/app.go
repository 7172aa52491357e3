// Package rlapp is the goplane viewer built on raylib. It polls input once
// per frame and paints the plane in immediate mode.
package rlapp

import (
	"fmt"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
	"github.com/philipparndt/goplane/pkg/watcher"
)

// fontBaseSize is the rasterised size of the UI font; smaller text is
// scaled down from it
const fontBaseSize = 64

const reloadDebounce = 300 * time.Millisecond

var fontChars = []rune(" !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~°±×µ²³")

// Options configures the raylib viewer
type Options struct {
	Config    *config.Config
	Viper     *viper.Viper
	ScenePath string
	StatePath string
	Watch     bool
	Logger    *zap.Logger
}

// App is the raylib window state
type App struct {
	opts   Options
	cfg    *config.Config
	log    *zap.Logger
	poller *gesture.Poller
	plane  *plane.Plane
	grid   *grid.Renderer
	surf   *Surface
	font   rl.Font

	watcher      *watcher.FileWatcher
	configDirty  atomic.Bool
	sceneDirty   atomic.Bool
	width        int
	height       int
	lastResult   string
	cursorScreen rl.Vector2
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Config == nil {
		opts.Config = config.NewDefaultConfig()
	}
	cfg := opts.Config

	s := scene.New("")
	if opts.ScenePath != "" {
		loaded, err := scene.Parse(opts.ScenePath)
		if err != nil {
			return fmt.Errorf("failed to load scene: %w", err)
		}
		s = loaded
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app := &App{
		opts:   opts,
		cfg:    cfg,
		log:    opts.Logger.Named("raylib"),
		poller: gesture.NewPoller(),
		font:   rl.LoadFontFromMemory(".ttf", goregular.TTF, fontBaseSize, fontChars),
	}
	defer rl.UnloadFont(app.font)
	rl.SetTextureFilter(app.font.Texture, rl.FilterBilinear)

	popts := cfg.PlaneOptions(opts.Logger)
	app.plane = plane.New(app.poller, s, popts)
	defer app.plane.Destroy()
	app.surf = NewSurface(app.font, popts.Background)
	app.grid = grid.NewRenderer(app.surf, popts.Grid)

	app.plane.Tool.OnComplete.On(func(m measurement.Measurement) {
		app.lastResult = m.Label()
	})

	app.restoreState()
	defer app.saveState()

	if opts.Watch {
		if err := app.setupFileWatcher(); err != nil {
			app.log.Warn("file watching disabled", zap.Error(err))
		} else {
			defer app.watcher.Close()
		}
	}

	app.loop()
	return nil
}

func (app *App) loop() {
	ctrl := app.plane.Controller
	keys := shortcut.Target{Controller: ctrl, Grid: app.grid, Tool: app.plane.Tool}

	for {
		// Escape cancels a measurement instead of closing the window
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		if ctrlDown() && rl.IsKeyPressed(rl.KeyC) {
			break
		}
		now := time.Now()

		if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); w != app.width || h != app.height {
			app.width, app.height = w, h
			ctrl.Resize(float64(w), float64(h))
		}
		app.applyReloads()

		app.cursorScreen = rl.GetMousePosition()
		app.poller.Update(readDevice(now))
		if !ctrlDown() {
			for _, a := range pressedActions() {
				if a == shortcut.ClearMeasurements {
					app.lastResult = ""
				}
				keys.Apply(a)
			}
		}
		app.plane.Queue.Tick(now)

		rl.BeginDrawing()
		app.grid.Redraw(ctrl.View())
		app.plane.Draw(app.surf)
		app.drawUI()
		rl.EndDrawing()
	}
}

func (app *App) restoreState() {
	if app.opts.StatePath == "" {
		return
	}
	state, ok, err := viewport.LoadState(app.opts.StatePath)
	if err != nil {
		app.log.Warn("failed to restore viewport state", zap.Error(err))
		return
	}
	if ok {
		app.plane.Controller.Restore(state)
	}
}

func (app *App) saveState() {
	if app.opts.StatePath == "" {
		return
	}
	if err := viewport.SaveState(app.opts.StatePath, app.plane.Controller.Snapshot()); err != nil {
		app.log.Warn("failed to save viewport state", zap.Error(err))
	}
}
