package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelworks/framekit"
	"github.com/reelworks/framekit/depot"
)

var (
	publishStore    string
	publishVerify   bool
	publishChecksum string
	publishInclude  []string
	publishExclude  []string

	publishCmd = &cobra.Command{
		Use:   "publish <source>... <dest-dir>",
		Short: "Publish files into a directory through the dedup store",
		Long: `Publish copies each source file into the archive store, reusing an
existing stored copy when one already holds identical content, and leaves
a relative symlink in the destination directory. Source directories are
walked recursively, keeping their layout below the destination.`,
		Example: `  framekit publish render.0001.exr /show/plates --store /show/.store
  framekit publish render/ /show/plates -s /show/.store --include '*.exr'`,
		Args: cobra.MinimumNArgs(2),
		RunE: runPublish,
	}
)

func init() {
	publishCmd.Flags().StringVarP(&publishStore, "store", "s", "", "archive store directory (BEAVER_FRAMEKIT_STORE_DIR)")
	publishCmd.Flags().BoolVar(&publishVerify, "verify", false, "re-read and checksum every new copy before linking")
	publishCmd.Flags().StringVar(&publishChecksum, "checksum", "", "content comparison algorithm (md5, sha1, sha256, sha512, crc32, xxhash, blake3)")
	publishCmd.Flags().StringSliceVar(&publishInclude, "include", nil, "only publish base names matching these globs")
	publishCmd.Flags().StringSliceVar(&publishExclude, "exclude", nil, "skip base names matching these globs")
}

func runPublish(cmd *cobra.Command, args []string) error {
	destDir := args[len(args)-1]
	sources := args[:len(args)-1]

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	selector := publishSelector()
	published := 0

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			if err := publishOne(cmd, store, source, filepath.Join(destDir, filepath.Base(source))); err != nil {
				return err
			}
			published++
			continue
		}

		// The store guard below compares absolute paths.
		srcAbs, err := filepath.Abs(source)
		if err != nil {
			return err
		}
		entries, err := framekit.ListFiles(cmd.Context(), srcAbs, selector, true)
		if err != nil {
			return err
		}
		for _, e := range entries {
			// Walking a tree that contains the store itself must not
			// republish stored files.
			if pathWithin(store.Dir(), e.Path) {
				logger.Debug("skipping store internal file", "path", e.Path)
				continue
			}
			rel, err := filepath.Rel(srcAbs, e.Path)
			if err != nil {
				return err
			}
			dest := filepath.Join(destDir, rel)
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			if err := publishOne(cmd, store, e.Path, dest); err != nil {
				return err
			}
			published++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %d file(s) published, store %s\n",
		SuccessStyle.Render("done:"), published, PathStyle.Render(store.Dir()))
	return nil
}

// openStore builds the depot from config with flag overrides applied.
func openStore(cmd *cobra.Command) (*depot.Store, error) {
	sc := *cfg
	if publishStore != "" {
		sc.StoreDir = publishStore
	}
	if cmd.Flags().Changed("verify") {
		sc.VerifiedCopy = publishVerify
	}
	if publishChecksum != "" {
		sc.Checksum = publishChecksum
	}
	if sc.StoreDir == "" {
		return nil, fmt.Errorf("no store directory: pass --store, set BEAVER_FRAMEKIT_STORE_DIR or configure store_dir")
	}
	return depot.FromConfig(&sc)
}

func publishOne(cmd *cobra.Command, store *depot.Store, source, dest string) error {
	canonical, err := store.Publish(cmd.Context(), source, dest)
	if err != nil {
		return err
	}
	logger.Debug("published", "source", source, "dest", dest, "stored", canonical)
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", dest, PathStyle.Render(filepath.Base(canonical)))
	return nil
}

// publishSelector composes the include and exclude globs. Includes are
// OR-ed together; every exclude is applied on top.
func publishSelector() framekit.Selector {
	sel := framekit.All()
	if len(publishInclude) > 0 {
		globs := make([]framekit.Selector, 0, len(publishInclude))
		for _, p := range publishInclude {
			globs = append(globs, framekit.Glob(p))
		}
		sel = framekit.Or(globs...)
	}
	for _, p := range publishExclude {
		sel = framekit.And(sel, framekit.Not(framekit.Glob(p)))
	}
	return sel
}

// pathWithin reports whether path sits at or below root.
func pathWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!filepath.IsAbs(rel) && rel != ".." &&
		!strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
