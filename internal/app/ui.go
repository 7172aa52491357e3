package app

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/gesture"
	"github.com/philipparndt/goplane/pkg/measurement"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
	"github.com/philipparndt/goplane/version"
)

var modeOrder = []viewport.Mode{viewport.ModeSelect, viewport.ModeGrab, viewport.ModeMeasure, viewport.ModeDraw}

func modeLabels() []string {
	labels := make([]string, len(modeOrder))
	for i, m := range modeOrder {
		labels[i] = m.String()
	}
	return labels
}

func (a *App) buildToolbar() fyne.CanvasObject {
	ctrl := a.viewer.Controller()

	a.modeSelect = widget.NewSelect(modeLabels(), func(s string) {
		if m, err := viewport.ParseMode(s); err == nil {
			ctrl.SetMode(m)
		}
	})
	a.modeSelect.SetSelected(ctrl.Mode().String())

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.showOpenDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.showSaveDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { ctrl.ZoomIn(0) }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { ctrl.ZoomOut(0) }),
		widget.NewToolbarAction(theme.ZoomFitIcon(), a.fit),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), ctrl.ResetView),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.GridIcon(), a.toggleGrid),
		widget.NewToolbarAction(theme.DeleteIcon(), a.clearMeasurements),
	)

	return container.NewBorder(nil, nil, nil, a.modeSelect, toolbar)
}

func (a *App) buildStatusBar() fyne.CanvasObject {
	a.status = widget.NewLabel("")
	a.status.TextStyle = fyne.TextStyle{Monospace: true}
	versionLabel := widget.NewLabel(fmt.Sprintf("v%s", version.GetVersion()))
	return container.NewBorder(nil, nil, nil, versionLabel, a.status)
}

// bindStatus keeps the status line and mode selector in sync with the viewport
func (a *App) bindStatus() {
	ctrl := a.viewer.Controller()
	cursor := ctrl.Center()

	ctrl.OnUpdate.On(func(u viewport.Update) {
		if !u.Deferred {
			a.setStatus(cursor)
		}
	})
	ctrl.OnPointer.On(func(p viewport.PointerEvent) {
		if p.Action == gesture.ActionHover || p.Action == gesture.ActionDrag {
			cursor = p.World
			a.setStatus(cursor)
		}
	})
	ctrl.OnModeChanged.On(func(m viewport.ModeChange) {
		a.modeSelect.SetSelected(m.To.String())
		a.setStatus(cursor)
	})

	tool := a.viewer.Measurement()
	tool.OnComplete.On(func(m measurement.Measurement) {
		a.lastResult = m.Label()
		a.setStatus(cursor)
	})
	a.setStatus(cursor)
}

func (a *App) setStatus(cursor geometry.Point) {
	ctrl := a.viewer.Controller()
	parts := []string{
		fmt.Sprintf("zoom %.3f", ctrl.Zoom()),
		fmt.Sprintf("center %s", ctrl.Center()),
		fmt.Sprintf("cursor %s", cursor),
		fmt.Sprintf("mode %s", ctrl.Mode()),
	}
	if a.lastResult != "" {
		parts = append(parts, "last "+a.lastResult)
	}
	a.status.SetText(strings.Join(parts, " | "))
}

// StatusText returns the text of the status line
func (a *App) StatusText() string {
	return a.status.Text
}

func (a *App) shortcuts() shortcut.Target {
	return shortcut.Target{
		Controller: a.viewer.Controller(),
		Grid:       a.viewer.Grid(),
		Tool:       a.viewer.Measurement(),
	}
}

func (a *App) fit() {
	a.shortcuts().Apply(shortcut.Fit)
}

func (a *App) toggleGrid() {
	a.shortcuts().Apply(shortcut.ToggleGrid)
}

func (a *App) clearMeasurements() {
	a.viewer.Measurement().Clear()
	a.lastResult = ""
	a.setStatus(a.viewer.Controller().Center())
}

// handleKey runs the shortcut bound to a typed key
func (a *App) handleKey(ev *fyne.KeyEvent) {
	action := shortcut.ForKey(string(ev.Name))
	if action == shortcut.ClearMeasurements {
		a.clearMeasurements()
		return
	}
	if a.shortcuts().Apply(action) {
		a.log.Debug("shortcut", zap.Stringer("action", action))
	}
}

func (a *App) showOpenDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		if err := a.loadScene(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

func (a *App) showSaveDialog() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := a.scene.Save(path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

// loadScene replaces the displayed scene with the file at path and fits it
func (a *App) loadScene(path string) error {
	loaded, err := scene.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	a.scene.Replace(loaded)
	a.opts.ScenePath = path
	a.window.SetTitle(a.title())
	a.fit()
	a.log.Info("scene loaded", zap.String("path", path), zap.Int("items", a.scene.Count()))
	return nil
}
