package framekit

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// RealPaths resolves each path through any symbolic links. A path that
// cannot be resolved is passed through unchanged.
func RealPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		real, err := filepath.EvalSymlinks(p)
		if err != nil {
			out = append(out, p)
			continue
		}
		out = append(out, real)
	}
	return out
}

// FindAncestorWith walks up from path's parent directory looking for the
// first ancestor that directly contains any of the named entries. This is
// how marker files (a project config, a store tag) are discovered from
// somewhere inside a tree. When maxDepth is positive at most that many
// levels are checked; otherwise the search runs to the filesystem root.
// Returns the containing ancestor and true, or "" and false.
func FindAncestorWith(path string, names []string, maxDepth int) (string, bool) {
	dir := filepath.Dir(filepath.Clean(path))
	for level := 0; ; level++ {
		for _, name := range names {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, true
			}
		}
		if maxDepth > 0 && level+1 >= maxDepth {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// InvertDirList returns the subdirectories of parent that are not in the
// given set of names, optionally limited to names matching a regular
// expression anchored at the start. This inverts a known set of
// subdirectories against the live directory.
func InvertDirList(parent string, names []string, pattern string) ([]string, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		if re, err = regexp.Compile(`\A(?:` + pattern + `)`); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPattern, err)
		}
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, &PathError{Op: "invert", Path: parent, Err: underlying(err)}
	}

	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}

	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, ok := known[e.Name()]; ok {
			continue
		}
		if re != nil && !re.MatchString(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}
