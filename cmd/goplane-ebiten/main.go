package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/goplane/internal/cli"
	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/ebapp"
	"github.com/philipparndt/goplane/version"
)

func main() {
	v := config.NewViper()
	flags := &cli.Flags{}

	cmd := &cobra.Command{
		Use:           "goplane-ebiten [scene]",
		Short:         "goplane viewer with multi-touch pinch zoom",
		Version:       version.GetFullVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.Setup(v)
			if err != nil {
				return err
			}
			opts := ebapp.Options{
				Config:    env.Config,
				Viper:     env.Viper,
				StatePath: flags.StatePath(),
				Watch:     flags.Watch,
				Logger:    env.Logger,
			}
			if len(args) == 1 {
				opts.ScenePath = args[0]
			}
			return ebapp.Run(opts)
		},
	}
	cli.AddFlags(cmd, v, flags)
	cli.Execute(cmd)
}
