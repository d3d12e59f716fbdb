package main

import (
	"github.com/spf13/cobra"

	"github.com/reelworks/framekit"
)

// patternFlags are the pattern-parsing flags shared by resolve, expand and
// watch. Each command owns its own instance so flag state never bleeds
// between commands.
type patternFlags struct {
	padding         int
	udim            string
	lenientUDIM     bool
	matchHashLength bool
}

func (f *patternFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.padding, "padding", 0, "frame padding width (0 derives it from the largest frame)")
	cmd.Flags().StringVar(&f.udim, "udim", framekit.DefaultUDIMIdentifier, "UDIM placeholder to look for in the pattern")
	cmd.Flags().BoolVar(&f.lenientUDIM, "lenient-udim", false, "accept any token starting with four UDIM digits")
	cmd.Flags().BoolVar(&f.matchHashLength, "match-hash-length", false, "make each # match exactly one digit")
}

// options layers flag values over the configuration. Only flags the user
// actually set on the command line override config; padding in particular
// is tri-state, where an explicit 0 means "derive from the largest frame".
func (f *patternFlags) options(cmd *cobra.Command) []framekit.Option {
	opts := cfg.PatternOptions()
	flags := cmd.Flags()

	if flags.Changed("udim") {
		opts = append(opts, framekit.WithUDIMIdentifier(f.udim))
	}
	if flags.Changed("lenient-udim") {
		opts = append(opts, framekit.WithStrictUDIM(!f.lenientUDIM))
	}
	if flags.Changed("match-hash-length") {
		opts = append(opts, framekit.WithMatchHashLength(f.matchHashLength))
	}
	if flags.Changed("padding") {
		opts = append(opts, framekit.WithPadding(f.padding))
	}
	return opts
}
