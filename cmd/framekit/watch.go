package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelworks/framekit"
)

var (
	watchTimeout  time.Duration
	watchDebounce time.Duration
	watchFlags    patternFlags

	watchCmd = &cobra.Command{
		Use:   "watch <pattern>",
		Short: "Block until every frame of a pattern exists on disk",
		Long: `Watch resolves the pattern, then waits for filesystem events in the
pattern's directory until all frames have arrived. Useful for gating a
pipeline step on a render finishing.`,
		Example: `  framekit watch '/shots/sq10/plate.1-240#.exr' --timeout 2h
  framekit watch 'render.1-100#.exr' --debounce 2s`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "give up after this long (0 waits forever)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", framekit.DefaultDebounce, "settle time after an event before re-checking")
	watchFlags.register(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if watchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchTimeout)
		defer cancel()
	}

	opts := watchFlags.options(cmd)
	if cmd.Flags().Changed("debounce") {
		opts = append(opts, framekit.WithDebounce(watchDebounce))
	}

	logger.Debug("waiting for sequence", "pattern", args[0])
	result, err := framekit.WaitComplete(ctx, args[0], opts...)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gave up after %s waiting for %s", watchTimeout, args[0])
	}
	if err != nil {
		return err
	}

	for _, path := range result.Matched {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("complete:")+fmt.Sprintf(" %d file(s)", len(result.Matched)))
	return nil
}
