package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goplane/internal/render"
	"github.com/philipparndt/goplane/pkg/geometry"
	"github.com/philipparndt/goplane/pkg/scene"
	"github.com/philipparndt/goplane/pkg/viewport"
)

var renderFlags struct {
	out      string
	centerX  float64
	centerY  float64
	fit      bool
	measures []float64
}

var renderCmd = &cobra.Command{
	Use:   "render [scene]",
	Short: "Render the grid and a scene to a PNG file",
	Long: `Render the grid, an optional scene and measurements to a PNG image.
The image size follows --width and --height, the zoom follows --zoom.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.out, "out", "o", "goplane.png", "output PNG file")
	f.Float64Var(&renderFlags.centerX, "center-x", 0, "world X at the image center")
	f.Float64Var(&renderFlags.centerY, "center-y", 0, "world Y at the image center")
	f.BoolVar(&renderFlags.fit, "fit", false, "fit the scene into the image")
	f.Float64SliceVar(&renderFlags.measures, "measure", nil, "measurement as x1,y1,x2,y2 (repeatable)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := env.Config

	s := scene.New("")
	if len(args) == 1 {
		loaded, err := scene.Parse(args[0])
		if err != nil {
			return err
		}
		s = loaded
	}

	segments, err := parseSegments(renderFlags.measures)
	if err != nil {
		return err
	}
	opts := render.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		State: viewport.State{
			Center: geometry.NewPoint(renderFlags.centerX, renderFlags.centerY),
			Zoom:   cfg.Viewport.Zoom,
		},
		Fit:          renderFlags.fit,
		Measurements: segments,
		Plane:        cfg.PlaneOptions(env.Logger),
	}
	if err := render.WritePNG(renderFlags.out, s, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", renderFlags.out, opts.Width, opts.Height)
	return nil
}

// parseSegments groups a flat coordinate list into measurements
func parseSegments(values []float64) ([]render.Segment, error) {
	if len(values)%4 != 0 {
		return nil, fmt.Errorf("--measure needs groups of four values, got %d", len(values))
	}
	var out []render.Segment
	for i := 0; i < len(values); i += 4 {
		out = append(out, render.Segment{
			Start: geometry.NewPoint(values[i], values[i+1]),
			End:   geometry.NewPoint(values[i+2], values[i+3]),
		})
	}
	return out, nil
}
