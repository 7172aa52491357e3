package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goplane/pkg/analysis"
	"github.com/philipparndt/goplane/pkg/scene"
)

var infoSlice float64

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display measurements of a scene or model cross-section",
	Long: `Show bounds, segment statistics and enclosed area of a YAML scene.
STL and OpenSCAD models are cut at --slice (default: half height) first.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Float64Var(&infoSlice, "slice", math.NaN(), "height of the STL cross-section")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	var s *scene.Scene
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".stl":
		s, err = scene.ImportSTL(filename, infoSlice)
	case ".scad":
		s, err = scene.ImportSCAD(cmd.Context(), filename, infoSlice)
	default:
		s, err = scene.Parse(filename)
	}
	if err != nil {
		return err
	}

	result := analysis.AnalyzeScene(s)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Scene Information")
	fmt.Fprintln(out, "=================")
	if s.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", s.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Content:")
	fmt.Fprintf(out, "  Markers: %d\n", result.MarkerCount)
	fmt.Fprintf(out, "  Polylines: %d (%d closed)\n", result.PolylineCount, result.ClosedCount)
	fmt.Fprintf(out, "  Segments: %d\n\n", result.SegmentCount)

	if result.Empty {
		fmt.Fprintln(out, "Bounds: empty")
		return nil
	}
	fmt.Fprintln(out, "Bounds:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatPoint(result.Bounds.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatPoint(result.Bounds.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatPoint(result.Bounds.Center()))
	fmt.Fprintf(out, "  Width: %s\n", analysis.FormatMeasurement(result.Bounds.Width(), ""))
	fmt.Fprintf(out, "  Height: %s\n\n", analysis.FormatMeasurement(result.Bounds.Height(), ""))

	if result.SegmentCount == 0 {
		return nil
	}
	fmt.Fprintln(out, "Segments:")
	fmt.Fprintf(out, "  Total length: %s\n", analysis.FormatMeasurement(result.TotalLength, ""))
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinSegment, ""))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxSegment, ""))
	fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgSegment, ""))
	if result.ClosedCount > 0 {
		fmt.Fprintf(out, "  Enclosed area: %s\n", analysis.FormatMeasurement(result.EnclosedArea, "square units"))
	}
	return nil
}
