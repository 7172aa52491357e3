// Package render paints a scene with its grid into a still image.
package render

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/internal/shortcut"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// ErrSize is returned for a non-positive image size
var ErrSize = errors.New("image size must be positive")

// Segment is a measurement between two world points
type Segment struct {
	Start geometry.Point
	End   geometry.Point
}

// Options configures a still image
type Options struct {
	Width  int
	Height int
	// State is applied unless Fit is set
	State        viewport.State
	Fit          bool
	Measurements []Segment
	Plane        plane.Options
}

// Image paints s and returns the composite holding the result
func Image(s *scene.Scene, opts Options) (*plane.Composite, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", opts.Width, opts.Height, ErrSize)
	}
	popts := opts.Plane.WithLogger(opts.Plane.Logger)
	log := popts.Logger.Named("render")

	p := plane.New(nil, s, popts)
	defer p.Destroy()

	ctrl := p.Controller
	ctrl.Resize(float64(opts.Width), float64(opts.Height))
	if opts.Fit {
		shortcut.Target{Controller: ctrl}.Apply(shortcut.Fit)
	} else {
		ctrl.Restore(opts.State)
	}
	for _, m := range opts.Measurements {
		p.Tool.Click(m.Start)
		p.Tool.Click(m.End)
	}
	p.Tool.Cancel()

	comp, err := plane.NewComposite(opts.Width, opts.Height, popts.Background, popts.Grid, p.Layers()...)
	if err != nil {
		return nil, err
	}
	comp.Redraw(ctrl.View())

	v := ctrl.View()
	log.Debug("rendered",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Float64("zoom", v.Zoom),
		zap.Stringer("center", v.Center))
	return comp, nil
}

// WritePNG renders s into a PNG file
func WritePNG(path string, s *scene.Scene, opts Options) error {
	comp, err := Image(s, opts)
	if err != nil {
		return err
	}
	defer comp.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := comp.Surface().EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
