// Package app is the goplane desktop application built on fyne.
package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewer"
	"github.com/philipparndt/goplane/pkg/viewport"
	"github.com/philipparndt/goplane/pkg/watcher"
)

// AppID identifies the application to fyne preferences and storage
const AppID = "io.github.philipparndt.goplane"

// Options configures the application
type Options struct {
	Config    *config.Config
	Viper     *viper.Viper // source of Config, used for hot reload
	ScenePath string
	StatePath string // viewport state restored on start and saved on close
	Watch     bool
	Logger    *zap.Logger
}

// App is the main window with its viewer, toolbar and status line
type App struct {
	fyne   fyne.App
	window fyne.Window
	viewer *viewer.Viewer
	scene  *scene.Scene
	cfg    *config.Config
	opts   Options
	log    *zap.Logger

	status     *widget.Label
	modeSelect *widget.Select
	watcher    *watcher.FileWatcher
	lastResult string
}

// Run opens the main window and blocks until it is closed
func Run(opts Options) error {
	a, err := New(fyneapp.NewWithID(AppID), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	a.window.ShowAndRun()
	return nil
}

// New builds the application on fa without showing it
func New(fa fyne.App, opts Options) (*App, error) {
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
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		s = loaded
	}

	a := &App{
		fyne:  fa,
		scene: s,
		cfg:   cfg,
		opts:  opts,
		log:   opts.Logger.Named("app"),
	}

	v, err := viewer.New(s, cfg.PlaneOptions(opts.Logger))
	if err != nil {
		return nil, err
	}
	a.viewer = v

	if err := a.restoreState(); err != nil {
		a.log.Warn("failed to restore viewport state", zap.Error(err))
	}

	a.window = fa.NewWindow(a.title())
	a.window.SetContent(container.NewBorder(a.buildToolbar(), a.buildStatusBar(), nil, nil, v))
	a.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	a.window.Canvas().SetOnTypedKey(a.handleKey)
	a.window.SetOnClosed(func() {
		if err := a.saveState(); err != nil {
			a.log.Warn("failed to save viewport state", zap.Error(err))
		}
	})
	a.bindStatus()

	if opts.Watch {
		if err := a.setupFileWatcher(); err != nil {
			a.log.Warn("file watching disabled", zap.Error(err))
		}
	}
	return a, nil
}

func (a *App) title() string {
	title := a.cfg.Window.Title
	if a.scene.Name != "" {
		title = fmt.Sprintf("%s - %s", title, a.scene.Name)
	}
	return title
}

// Window returns the main window
func (a *App) Window() fyne.Window {
	return a.window
}

// Viewer returns the plane viewer
func (a *App) Viewer() *viewer.Viewer {
	return a.viewer
}

// Close stops file watching and releases the viewer
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	a.viewer.Destroy()
}

func (a *App) restoreState() error {
	if a.opts.StatePath == "" {
		return nil
	}
	state, ok, err := viewport.LoadState(a.opts.StatePath)
	if err != nil || !ok {
		return err
	}
	a.viewer.Controller().Restore(state)
	return nil
}

func (a *App) saveState() error {
	if a.opts.StatePath == "" {
		return nil
	}
	return viewport.SaveState(a.opts.StatePath, a.viewer.Controller().Snapshot())
}
