// Command framekit resolves, expands, watches and publishes versioned file
// sequences: frame ranges, UDIM tile sets and printf-style sequence
// patterns, backed by a deduplicating archive store.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reelworks/framekit"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging.
	verbose bool
	// cfgFile is an explicit config file path from --config.
	cfgFile string

	// cfg carries the effective configuration: environment, then project
	// file, then flags. Populated by initConfig before any RunE fires.
	cfg *framekit.Config

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "framekit",
	})

	rootCmd = &cobra.Command{
		Use:   "framekit",
		Short: "File sequence and publish tooling",
		Long: TitleStyle.Render("framekit") + SubtitleStyle.Render(" - file sequence and publish tooling") + `

framekit works with the file patterns common on VFX and animation
productions: frame ranges (shot.1-100###.exr), UDIM tile sets
(color.<UDIM>.tif) and printf-style sequences (render.%04d.exr).

` + SubtitleStyle.Render("Examples:") + `
  framekit expand  'render.1-5#.exr'       Print the per-frame names
  framekit resolve '/shots/sq10/plate.1-240#.exr'
                                           Check which frames exist on disk
  framekit watch   '/shots/sq10/plate.1-240#.exr' --timeout 2h
                                           Block until the sequence is complete
  framekit publish render/ /show/plates --store /show/.store
                                           Publish files through the dedup store`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the nearest framekit.yaml at or above the working directory)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(watchCmd)
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command through fang for styled help, errors and
// version output. Called once from main.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initConfig loads configuration before command handlers run. Environment
// first, then the project file (explicit --config, or the nearest
// framekit.yaml walking up from the working directory). A broken
// environment or config file is fatal rather than silently ignored.
func initConfig() {
	loaded, err := framekit.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}

	path := cfgFile
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			// The ancestor search starts at the parent of the given
			// path, so anchor it one level inside the working directory.
			start := filepath.Join(wd, framekit.DefaultConfigName)
			if dir, ok := framekit.FindAncestorWith(start, []string{framekit.DefaultConfigName}, 0); ok {
				path = filepath.Join(dir, framekit.DefaultConfigName)
			}
		}
	}
	if path != "" {
		if err := framekit.LoadConfigFile(path, loaded); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
			os.Exit(1)
		}
		logger.Debug("loaded config file", "path", path)
	}
	cfg = loaded

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
}
