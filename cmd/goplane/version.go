package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/goplane/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Info()
		keys := make([]string, 0, len(info))
		for k := range info {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", k+":", info[k])
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
