package framekit

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// ResolveResult holds the outcome of matching a sequence pattern against
// the directory it names.
type ResolveResult struct {
	// Matched is the lexically sorted list of existing files, as full paths
	Matched []string

	// Missing holds the frames that matched no directory entry, rendered
	// zero-padded to the effective width and sorted numerically
	Missing []string
}

// Complete reports whether every expanded frame matched at least one file.
func (r *ResolveResult) Complete() bool {
	return len(r.Missing) == 0
}

// Resolve expands a sequence pattern and matches it against the directory
// it names.
//
// The pattern's file name may carry a frame range ("shot.1-10.exr"), a UDIM
// token and printf or hash sequence markers. Every expanded frame is
// matched against the directory's entries; frames with no file on disk are
// reported in Missing. Without an explicit non-zero padding request a frame
// matches any number of leading zeros. A pattern without a frame range is
// matched as a single placeholder-aware name and Missing stays empty. The
// directory named by the pattern must exist.
func Resolve(ctx context.Context, pattern string, options ...Option) (*ResolveResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	o := newOptions(options...)

	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, &PathError{Op: "resolve", Path: pattern, Err: err}
	}
	dir, name := filepath.Split(abs)
	dir = filepath.Clean(dir)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &PathError{Op: "resolve", Path: dir, Err: underlying(err)}
	}
	if !info.IsDir() {
		return nil, &PathError{Op: "resolve", Path: dir, Err: ErrNotDir}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PathError{Op: "resolve", Path: dir, Err: underlying(err)}
	}
	listing := make([]string, 0, len(entries))
	for _, e := range entries {
		listing = append(listing, e.Name())
	}

	spec := FindFrameSpec(name)
	var frames []int
	if spec.Spec != "" {
		if frames, err = ExpandFrameSpec(spec.Spec); err != nil {
			return nil, &PathError{Op: "resolve", Path: pattern, Err: err}
		}
	}

	result := &ResolveResult{}

	if len(frames) == 0 {
		// No frame range: the whole name is one pattern.
		re, err := compileAnchored(patternFragment(name, o))
		if err != nil {
			return nil, &PathError{Op: "resolve", Path: pattern, Err: err}
		}
		for _, entry := range listing {
			if re.MatchString(entry) {
				result.Matched = append(result.Matched, filepath.Join(dir, entry))
			}
		}
		sort.Strings(result.Matched)
		return result, nil
	}

	width := CalcPadding(frames, spec.Spec, o.Padding)
	prefixPat := patternFragment(spec.Prefix, o)
	suffixPat := patternFragment(spec.Suffix, o)
	fixedWidth := o.Padding != nil && *o.Padding != 0

	var missing []int
	for _, frame := range frames {
		framePat := `0*` + strconv.Itoa(frame)
		if fixedWidth {
			framePat = padFrame(frame, width)
		}
		re, err := compileAnchored(prefixPat + framePat + suffixPat)
		if err != nil {
			return nil, &PathError{Op: "resolve", Path: pattern, Err: err}
		}

		found := false
		for _, entry := range listing {
			if re.MatchString(entry) {
				result.Matched = append(result.Matched, filepath.Join(dir, entry))
				found = true
			}
		}
		if !found {
			missing = append(missing, frame)
		}
	}

	sort.Strings(result.Matched)
	sort.Ints(missing)
	for _, frame := range missing {
		result.Missing = append(result.Missing, padFrame(frame, width))
	}
	return result, nil
}
