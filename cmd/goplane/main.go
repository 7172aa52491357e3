package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/goplane/internal/cli"
	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/version"
)

var (
	v     = config.NewViper()
	flags = &cli.Flags{}
	env   *cli.Env
)

var rootCmd = &cobra.Command{
	Use:   "goplane",
	Short: "A pannable, zoomable 2-D plane with grid, measurements and sketches",
	Long: `goplane shows an infinite 2-D plane with an adaptive labelled grid.
Drag or use momentum to pan, scroll or pinch to zoom, measure distances and
sketch polylines on top of simple YAML scenes.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = flags.Setup(v)
		return err
	},
}

func init() {
	cli.AddFlags(rootCmd, v, flags)
}

func main() {
	cli.Execute(rootCmd)
}
