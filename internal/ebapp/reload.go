package ebapp

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/watcher"
)

// setupFileWatcher flags the config and scene files for reload when they
// change. The reload itself runs in Update.
func (g *Game) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(reloadDebounce, g.opts.Logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if g.opts.Viper != nil {
		if path := g.opts.Viper.ConfigFileUsed(); path != "" {
			if err := fw.Watch([]string{path}, func(string) { g.configDirty.Store(true) }); err != nil {
				fw.Close()
				return fmt.Errorf("failed to watch config: %w", err)
			}
		}
	}
	if g.opts.ScenePath != "" {
		if err := fw.Watch(scene.Sources(g.opts.ScenePath), func(string) { g.sceneDirty.Store(true) }); err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch scene: %w", err)
		}
	}
	fw.Start()
	g.watcher = fw
	return nil
}

func (g *Game) applyReloads() {
	if g.configDirty.CompareAndSwap(true, false) && g.opts.Viper != nil {
		cfg, err := config.Reload(g.opts.Viper)
		if err != nil {
			g.log.Warn("config reload failed", zap.Error(err))
		} else {
			g.applyConfig(cfg)
			g.log.Info("config reloaded")
		}
	}
	if g.sceneDirty.CompareAndSwap(true, false) {
		loaded, err := scene.Parse(g.opts.ScenePath)
		if err != nil {
			g.log.Warn("scene reload failed", zap.Error(err))
			return
		}
		g.plane.Scene.Replace(loaded)
		g.keys.Apply(shortcut.Fit)
	}
}

func (g *Game) applyConfig(cfg *config.Config) {
	g.cfg = cfg
	log := g.opts.Logger
	g.comp.Grid().Apply(cfg.GridSettings())
	g.plane.Engine.SetOptions(cfg.GestureOptions(log))
	g.plane.Tool.SetOptions(cfg.MeasurementOptions(log))
	g.plane.Controller.SetZoomLimits(cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom)
	g.plane.SetPanLimits(cfg.Viewport.Bounds.Rect(), cfg.Viewport.BoundToContent)
	ebiten.SetWindowTitle(cfg.Window.Title)
	g.stale = true
}
