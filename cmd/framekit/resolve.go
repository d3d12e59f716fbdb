package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelworks/framekit"
)

var (
	resolveJSON  bool
	resolveFlags patternFlags

	resolveCmd = &cobra.Command{
		Use:   "resolve <pattern>",
		Short: "Resolve a pattern against files on disk",
		Long: `Resolve expands the pattern's frame range, matches it against the
directory listing and reports which files exist and which frames are
missing. Matched paths go to stdout, missing frames to stderr.`,
		Example: `  framekit resolve '/shots/sq10/plate.1-240#.exr'
  framekit resolve 'color.<UDIM>.tif' --json`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "emit machine readable JSON")
	resolveFlags.register(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	result, err := framekit.Resolve(cmd.Context(), args[0], resolveFlags.options(cmd)...)
	if err != nil {
		return err
	}

	if resolveJSON {
		out := struct {
			Matched  []string `json:"matched"`
			Missing  []string `json:"missing"`
			Complete bool     `json:"complete"`
		}{result.Matched, result.Missing, result.Complete()}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, path := range result.Matched {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if len(result.Missing) > 0 {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("missing frames: ")+strings.Join(result.Missing, " "))
	}
	return nil
}
