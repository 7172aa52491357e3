package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/goplane/internal/app"
)

var viewCmd = &cobra.Command{
	Use:   "view [scene]",
	Short: "Open the plane viewer",
	Long:  "Open the desktop viewer, optionally showing a YAML scene, or the cross-section of an STL or OpenSCAD model.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	opts := app.Options{
		Config:    env.Config,
		Viper:     env.Viper,
		StatePath: flags.StatePath(),
		Watch:     flags.Watch,
		Logger:    env.Logger,
	}
	if len(args) == 1 {
		opts.ScenePath = args[0]
	}
	return app.Run(opts)
}
