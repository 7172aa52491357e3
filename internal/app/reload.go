package app

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/watcher"
)

// reloadDebounce merges the bursts of events editors produce on save
const reloadDebounce = 300 * time.Millisecond

// setupFileWatcher reloads the config file and the scene file when they change
func (a *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(reloadDebounce, a.opts.Logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if a.opts.Viper != nil {
		if path := a.opts.Viper.ConfigFileUsed(); path != "" {
			if err := fw.Watch([]string{path}, func(string) { fyne.Do(a.reloadConfig) }); err != nil {
				fw.Close()
				return fmt.Errorf("failed to watch config: %w", err)
			}
			a.log.Info("watching config for changes", zap.String("path", path))
		}
	}
	if a.opts.ScenePath != "" {
		if err := fw.Watch(scene.Sources(a.opts.ScenePath), func(string) { fyne.Do(a.reloadScene) }); err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch scene: %w", err)
		}
		a.log.Info("watching scene for changes", zap.String("path", a.opts.ScenePath))
	}

	fw.Start()
	a.watcher = fw
	return nil
}

// reloadConfig re-reads the configuration and applies the settings that can
// change at runtime
func (a *App) reloadConfig() {
	if a.opts.Viper == nil {
		return
	}
	cfg, err := config.Reload(a.opts.Viper)
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		return
	}
	a.applyConfig(cfg)
	a.log.Info("config reloaded")
}

func (a *App) applyConfig(cfg *config.Config) {
	a.cfg = cfg
	log := a.opts.Logger

	a.viewer.Grid().Apply(cfg.GridSettings())
	a.viewer.Engine().SetOptions(cfg.GestureOptions(log))
	a.viewer.Measurement().SetOptions(cfg.MeasurementOptions(log))

	ctrl := a.viewer.Controller()
	ctrl.SetZoomLimits(cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom)
	a.viewer.Plane().SetPanLimits(cfg.Viewport.Bounds.Rect(), cfg.Viewport.BoundToContent)
	a.window.SetTitle(a.title())
	a.viewer.Composite().Refresh()
}

func (a *App) reloadScene() {
	if a.opts.ScenePath == "" {
		return
	}
	if err := a.loadScene(a.opts.ScenePath); err != nil {
		a.log.Warn("scene reload failed", zap.Error(err))
	}
}
