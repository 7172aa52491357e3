package render

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/plane"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
)

func redLine() *scene.Scene {
	s := scene.New("line")
	s.AddPolyline(scene.Polyline{
		Points: []geometry.Point{geometry.NewPoint(-50, 10), geometry.NewPoint(50, 10)},
		Color:  "#ff0000",
		Width:  4,
	})
	return s
}

func countRed(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r > 0xc000 && g < 0x4000 && bl < 0x4000 {
				n++
			}
		}
	}
	return n
}

func TestImageFitsScene(t *testing.T) {
	comp, err := Image(redLine(), Options{Width: 200, Height: 100, Fit: true, Plane: plane.DefaultOptions()})
	require.NoError(t, err)
	defer comp.Close()

	v := comp.View()
	assert.Equal(t, geometry.NewPoint(0, 10), v.Center)
	assert.Greater(t, countRed(comp.Image()), 100)
}

func TestImageUsesState(t *testing.T) {
	opts := Options{
		Width:  200,
		Height: 100,
		State:  viewport.State{Center: geometry.NewPoint(1000, 1000), Zoom: 1},
		Plane:  plane.DefaultOptions(),
	}
	comp, err := Image(redLine(), opts)
	require.NoError(t, err)
	defer comp.Close()

	assert.Equal(t, geometry.NewPoint(1000, 1000), comp.View().Center)
	assert.Zero(t, countRed(comp.Image()), "the line is off screen")
}

func TestImageDrawsMeasurements(t *testing.T) {
	opts := Options{
		Width:        200,
		Height:       200,
		State:        viewport.State{Zoom: 1},
		Measurements: []Segment{{Start: geometry.NewPoint(-50, -50), End: geometry.NewPoint(50, 50)}},
		Plane:        plane.DefaultOptions(),
	}
	opts.Plane.Measurement.LineColor = "#ff0000"
	opts.Plane.Measurement.LineWidth = 3

	comp, err := Image(scene.New(""), opts)
	require.NoError(t, err)
	defer comp.Close()
	assert.Greater(t, countRed(comp.Image()), 50)
}

func TestImageRejectsEmptySize(t *testing.T) {
	_, err := Image(redLine(), Options{Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrSize)
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, redLine(), Options{Width: 64, Height: 48, Fit: true, Plane: plane.DefaultOptions()}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
}
