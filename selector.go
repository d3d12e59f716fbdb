package framekit

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// ============================================================================
// Selector Interface
// ============================================================================

// Entry describes one directory entry seen during a walk.
type Entry struct {
	// Name is the base name
	Name string
	// Path is the full path
	Path string
	// Size is the byte size
	Size int64
	// IsDir marks directories
	IsDir bool
}

// Selector decides which files a directory walk keeps.
//
// Selectors compose: combine them with And, Or and Not, or drop to
// FuncSelector for one-off logic.
//
//	// EXR files under 100MB
//	sel := framekit.And(
//	    framekit.Glob("*.exr"),
//	    framekit.FuncSelector(func(e *framekit.Entry) bool {
//	        return e.Size < 100*1024*1024
//	    }),
//	)
//	files, err := framekit.ListFiles(ctx, "/renders", sel, true)
type Selector interface {
	// Match returns true if the file should be included in results.
	Match(e *Entry) bool

	// TraverseDescendants returns true if a directory's descendants
	// should be walked at all. Returning false skips the directory and
	// everything below it. Only called for directories.
	TraverseDescendants(e *Entry) bool
}

// ============================================================================
// Directory Walking
// ============================================================================

// ListFiles walks root and returns the files the selector accepts. Set
// recursive for deep traversal; a nil selector accepts everything.
func ListFiles(ctx context.Context, root string, selector Selector, recursive bool) ([]Entry, error) {
	if selector == nil {
		selector = All()
	}

	var results []Entry
	if err := listFiles(ctx, root, selector, recursive, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func listFiles(ctx context.Context, dir string, selector Selector, recursive bool, results *[]Entry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &PathError{Op: "list", Path: dir, Err: underlying(err)}
	}

	for _, de := range entries {
		e := &Entry{
			Name:  de.Name(),
			Path:  filepath.Join(dir, de.Name()),
			IsDir: de.IsDir(),
		}
		if e.IsDir {
			if recursive && selector.TraverseDescendants(e) {
				if err := listFiles(ctx, e.Path, selector, recursive, results); err != nil {
					return err
				}
			}
			continue
		}

		info, err := de.Info()
		if err != nil {
			// Entry vanished mid-walk.
			continue
		}
		e.Size = info.Size()

		if selector.Match(e) {
			*results = append(*results, *e)
		}
	}
	return nil
}

// ListFilesRecursive returns every file under the given directories, as
// full paths in walk order.
func ListFilesRecursive(ctx context.Context, dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := ListFiles(ctx, dir, All(), true)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			files = append(files, e.Path)
		}
	}
	return files, nil
}

// ============================================================================
// Built-in Selectors
// ============================================================================

// AllSelector matches all files and traverses all directories.
type AllSelector struct{}

func (s AllSelector) Match(e *Entry) bool               { return true }
func (s AllSelector) TraverseDescendants(e *Entry) bool { return true }

// All returns a selector that matches every file.
func All() Selector {
	return AllSelector{}
}

type globSelector struct {
	g glob.Glob
}

// Glob creates a selector matching base names against a glob pattern.
// Supports *, ?, [abc], [a-z] and {alt,ernatives}. An invalid pattern
// matches nothing.
func Glob(pattern string) Selector {
	g, err := glob.Compile(pattern)
	if err != nil {
		return &globSelector{}
	}
	return &globSelector{g: g}
}

func (s *globSelector) Match(e *Entry) bool {
	return s.g != nil && s.g.Match(e.Name)
}

func (s *globSelector) TraverseDescendants(e *Entry) bool {
	return true
}

// ============================================================================
// Composable Selectors (And, Or, Not)
// ============================================================================

type andSelector struct {
	selectors []Selector
}

// And matches only if ALL selectors match.
func And(selectors ...Selector) Selector {
	return &andSelector{selectors: selectors}
}

func (s *andSelector) Match(e *Entry) bool {
	for _, sel := range s.selectors {
		if !sel.Match(e) {
			return false
		}
	}
	return true
}

func (s *andSelector) TraverseDescendants(e *Entry) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(e) {
			return true
		}
	}
	return false
}

type orSelector struct {
	selectors []Selector
}

// Or matches if ANY selector matches.
func Or(selectors ...Selector) Selector {
	return &orSelector{selectors: selectors}
}

func (s *orSelector) Match(e *Entry) bool {
	for _, sel := range s.selectors {
		if sel.Match(e) {
			return true
		}
	}
	return false
}

func (s *orSelector) TraverseDescendants(e *Entry) bool {
	for _, sel := range s.selectors {
		if sel.TraverseDescendants(e) {
			return true
		}
	}
	return false
}

type notSelector struct {
	selector Selector
}

// Not inverts a selector's match result.
func Not(selector Selector) Selector {
	return &notSelector{selector: selector}
}

func (s *notSelector) Match(e *Entry) bool {
	return !s.selector.Match(e)
}

func (s *notSelector) TraverseDescendants(e *Entry) bool {
	return true
}

type funcSelector struct {
	fn func(*Entry) bool
}

// FuncSelector creates a selector from a custom match function. Directories
// are always traversed.
func FuncSelector(fn func(*Entry) bool) Selector {
	return &funcSelector{fn: fn}
}

func (s *funcSelector) Match(e *Entry) bool {
	return s.fn(e)
}

func (s *funcSelector) TraverseDescendants(e *Entry) bool {
	return true
}
