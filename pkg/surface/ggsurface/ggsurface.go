// Package ggsurface implements surface.Surface on a gogpu/gg raster context.
package ggsurface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/goplane/pkg/surface"
)

// Surface paints into an in-memory RGBA image
type Surface struct {
	ctx   *gg.Context
	fonts *text.FontSource
	faces map[float64]text.Face
	err   error
}

var _ surface.Surface = (*Surface)(nil)
var _ surface.TextMeasurer = (*Surface)(nil)

// New creates a surface of the given size using the Go regular font for labels
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	fonts, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	return &Surface{
		ctx:   gg.NewContext(width, height),
		fonts: fonts,
		faces: make(map[float64]text.Face),
	}, nil
}

// Clear makes every pixel transparent
func (s *Surface) Clear() {
	s.ctx.Clear()
}

// Fill paints every pixel with c
func (s *Surface) Fill(c color.Color) {
	s.ctx.ClearWithColor(gg.FromColor(c))
}

// StrokeLine draws a straight line
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	if c == nil {
		return
	}
	s.ctx.SetColor(c)
	s.ctx.SetLineWidth(width)
	s.ctx.DrawLine(x1, y1, x2, y2)
	if err := s.ctx.Stroke(); err != nil {
		s.err = fmt.Errorf("failed to stroke line: %w", err)
	}
}

// DrawText draws a label anchored at (x, y)
func (s *Surface) DrawText(label string, x, y float64, style surface.TextStyle) {
	if style.Color == nil || label == "" {
		return
	}
	s.ctx.SetFont(s.face(style.Size))
	s.ctx.SetColor(style.Color)

	// gg anchors vertically from the baseline, so a top anchor moves the
	// baseline down by the full line height
	ax, ay := style.Anchor()
	s.ctx.DrawStringAnchored(label, x, y, ax, 1-ay)
}

// MeasureText returns the width and line height of a label
func (s *Surface) MeasureText(label string, size float64) (float64, float64) {
	s.ctx.SetFont(s.face(size))
	return s.ctx.MeasureString(label)
}

// Resize changes the surface size, discarding its contents
func (s *Surface) Resize(width, height int) error {
	if err := s.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("failed to resize surface: %w", err)
	}
	return nil
}

// Size returns the surface size in pixels
func (s *Surface) Size() (int, int) {
	return s.ctx.Width(), s.ctx.Height()
}

// Image returns the painted image
func (s *Surface) Image() image.Image {
	return s.ctx.Image()
}

// RGBA returns the painted image as *image.RGBA, converting when needed
func (s *Surface) RGBA() *image.RGBA {
	img := s.ctx.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// EncodePNG writes the image as PNG
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.ctx.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Err returns the last drawing error, if any
func (s *Surface) Err() error {
	return s.err
}

// Close releases the context
func (s *Surface) Close() error {
	return s.ctx.Close()
}

func (s *Surface) face(size float64) text.Face {
	if size <= 0 {
		size = 10
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := s.fonts.Face(size)
	s.faces[size] = f
	return f
}
