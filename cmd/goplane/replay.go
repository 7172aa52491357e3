package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/goplane/internal/replay"
	"github.com/philipparndt/goplane/pkg/viewport"
)

var replayMaxFrames int

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay a recorded gesture script and print the final viewport",
	Long: `Replay a YAML gesture script against a headless viewport using a virtual
clock and print the resulting state. Identical scripts give identical output.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&replayMaxFrames, "max-frames", replay.DefaultMaxFrames, "frames to run after the last step")
	rootCmd.AddCommand(replayCmd)
}

type replayReport struct {
	State        viewport.State `yaml:"state"`
	Frames       int            `yaml:"frames"`
	Updates      int            `yaml:"updates"`
	Settled      bool           `yaml:"settled"`
	Duration     string         `yaml:"duration"`
	Clicks       []string       `yaml:"clicks,omitempty"`
	Measurements []string       `yaml:"measurements,omitempty"`
	Strokes      int            `yaml:"strokes,omitempty"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	script, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	opts := replay.DefaultOptions()
	opts.Plane = env.Config.PlaneOptions(env.Logger)
	opts.MaxFrames = replayMaxFrames
	opts.Logger = env.Logger

	res, err := replay.Run(script, opts)
	if err != nil {
		return err
	}

	report := replayReport{
		State:    res.State,
		Frames:   res.Frames,
		Updates:  res.Updates,
		Settled:  res.Settled,
		Duration: res.Duration.String(),
		Strokes:  len(res.Strokes),
	}
	for _, c := range res.Clicks {
		report.Clicks = append(report.Clicks, c.String())
	}
	for _, m := range res.Measurements {
		report.Measurements = append(report.Measurements, m.Label())
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return enc.Close()
}
