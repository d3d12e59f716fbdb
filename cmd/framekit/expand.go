package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reelworks/framekit"
)

var (
	expandFlags patternFlags

	expandCmd = &cobra.Command{
		Use:   "expand <pattern>",
		Short: "Print the per-frame names of a pattern",
		Long: `Expand renders the concrete file name for every frame in the
pattern's range without touching the filesystem. A pattern with no frame
range prints unchanged.`,
		Example: `  framekit expand 'render.1-5#.exr'
  framekit expand 'sim.1-100x10@@@@.vdb' --padding 6`,
		Args: cobra.ExactArgs(1),
		RunE: runExpand,
	}
)

func init() {
	expandFlags.register(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	names, err := framekit.ExpandSequence(args[0], expandFlags.options(cmd)...)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
