package rlapp

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/watcher"
)

// setupFileWatcher flags the config and scene files for reload when they
// change. The reload itself runs on the render loop.
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(reloadDebounce, app.opts.Logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if app.opts.Viper != nil {
		if path := app.opts.Viper.ConfigFileUsed(); path != "" {
			if err := fw.Watch([]string{path}, func(string) { app.configDirty.Store(true) }); err != nil {
				fw.Close()
				return fmt.Errorf("failed to watch config: %w", err)
			}
		}
	}
	if app.opts.ScenePath != "" {
		if err := fw.Watch(scene.Sources(app.opts.ScenePath), func(string) { app.sceneDirty.Store(true) }); err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch scene: %w", err)
		}
	}

	fw.Start()
	app.watcher = fw
	return nil
}

func (app *App) applyReloads() {
	if app.configDirty.CompareAndSwap(true, false) && app.opts.Viper != nil {
		cfg, err := config.Reload(app.opts.Viper)
		if err != nil {
			app.log.Warn("config reload failed", zap.Error(err))
		} else {
			app.applyConfig(cfg)
			app.log.Info("config reloaded")
		}
	}

	if app.sceneDirty.CompareAndSwap(true, false) {
		loaded, err := scene.Parse(app.opts.ScenePath)
		if err != nil {
			app.log.Warn("scene reload failed", zap.Error(err))
			return
		}
		app.plane.Scene.Replace(loaded)
		shortcut.Target{Controller: app.plane.Controller}.Apply(shortcut.Fit)
		app.log.Info("scene reloaded", zap.Int("items", app.plane.Scene.Count()))
	}
}

func (app *App) applyConfig(cfg *config.Config) {
	app.cfg = cfg
	log := app.opts.Logger
	app.grid.Apply(cfg.GridSettings())
	app.plane.Engine.SetOptions(cfg.GestureOptions(log))
	app.plane.Tool.SetOptions(cfg.MeasurementOptions(log))
	app.plane.Controller.SetZoomLimits(cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom)
	app.plane.SetPanLimits(cfg.Viewport.Bounds.Rect(), cfg.Viewport.BoundToContent)
	rl.SetWindowTitle(cfg.Window.Title)
}
