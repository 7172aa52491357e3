package plane

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/philipparndt/goplane/pkg/event"
	"github.com/philipparndt/goplane/pkg/grid"
	"github.com/philipparndt/goplane/pkg/surface/ggsurface"
	"github.com/philipparndt/goplane/pkg/viewport"
)

// backdrop fills the surface with a background colour instead of clearing it
type backdrop struct {
	*ggsurface.Surface
	bg color.Color
}

func (b backdrop) Clear() {
	if b.bg == nil {
		b.Surface.Clear()
		return
	}
	b.Surface.Fill(b.bg)
}

// Composite paints the grid and any number of layers into one raster image.
// It is a viewport.Redrawer and is not safe for concurrent use.
type Composite struct {
	surf   *ggsurface.Surface
	target backdrop
	grid   *grid.Renderer
	layers []Layer
	log    *zap.Logger

	last    viewport.View
	hasView bool

	OnDrawn event.Signal[image.Image]
}

var _ viewport.Redrawer = (*Composite)(nil)

// NewComposite creates a composite of the given pixel size. A nil background
// leaves the image transparent where nothing is drawn.
func NewComposite(width, height int, background color.Color, opts grid.Options, layers ...Layer) (*Composite, error) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	surf, err := ggsurface.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create composite surface: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Composite{
		surf:   surf,
		target: backdrop{Surface: surf, bg: background},
		layers: layers,
		log:    opts.Logger.Named("composite"),
	}
	c.grid = grid.NewRenderer(c.target, opts)
	// a settings change redraws the grid alone, so the layers go on top again
	c.grid.OnChange.On(func(grid.Settings) { c.paintLayers() })
	return c, nil
}

// Grid returns the grid renderer
func (c *Composite) Grid() *grid.Renderer {
	return c.grid
}

// AddLayer appends a layer, drawn above the existing ones
func (c *Composite) AddLayer(l Layer) {
	c.layers = append(c.layers, l)
	c.Refresh()
}

// Redraw paints everything for v
func (c *Composite) Redraw(v viewport.View) {
	c.last = v
	c.hasView = true
	c.grid.Redraw(v)
	c.paintLayers()
}

// Refresh repaints with the last view
func (c *Composite) Refresh() {
	if !c.hasView {
		return
	}
	c.Redraw(c.last)
}

// View returns the last drawn view
func (c *Composite) View() viewport.View {
	return c.last
}

func (c *Composite) paintLayers() {
	if !c.hasView || !c.last.HasSize() {
		return
	}
	for _, l := range c.layers {
		l.Draw(c.target, c.last)
	}
	if err := c.surf.Err(); err != nil {
		c.log.Debug("drawing failed", zap.Error(err))
	}
	c.OnDrawn.Emit(c.surf.Image())
}

// Surface returns the raster surface
func (c *Composite) Surface() *ggsurface.Surface {
	return c.surf
}

// Image returns the painted image
func (c *Composite) Image() image.Image {
	return c.surf.Image()
}

// Close releases the raster surface
func (c *Composite) Close() error {
	return c.surf.Close()
}
