package framekit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FrameSpec is a file name split around its frame-range expression.
type FrameSpec struct {
	// Prefix is the text before the frame range
	Prefix string
	// Spec is the frame-range expression itself, empty when none was found
	Spec string
	// Suffix is the text after the frame range
	Suffix string
}

// frameItemRe validates one frame-range item on expansion. The scanner in
// FindFrameSpec consumes the same grammar.
var frameItemRe = regexp.MustCompile(`\A(\d+)(?:-(\d+)(?:[x:](-?\d+))?)?\z`)

// FindFrameSpec locates the frame-range expression in a file name.
//
// A frame range is a comma-separated list of items, each "start",
// "start-end" or "start-endxstep" (":" also introduces the step, and steps
// may be negative), optionally followed by a run of "#" or "@" padding
// markers. The expression must be bounded by the start of the name or a "."
// on the left and by the end of the name or a "." on the right. When a name
// holds several candidates the rightmost one wins. A name without any
// candidate comes back whole in Prefix.
func FindFrameSpec(name string) FrameSpec {
	start, end := -1, -1
	for i := 0; i < len(name); i++ {
		if i > 0 && name[i-1] != '.' {
			continue
		}
		if !isDigit(name[i]) {
			continue
		}
		if e, ok := scanFrameSpec(name, i); ok {
			start, end = i, e
		}
	}

	if start < 0 {
		return FrameSpec{Prefix: name}
	}
	return FrameSpec{
		Prefix: name[:start],
		Spec:   name[start:end],
		Suffix: name[end:],
	}
}

// scanFrameSpec consumes a frame-range expression beginning at offset
// start. It returns the exclusive end offset and whether a complete,
// correctly bounded expression was found there.
func scanFrameSpec(name string, start int) (int, bool) {
	i, ok := scanFrameItem(name, start)
	if !ok {
		return 0, false
	}

	for i < len(name) && name[i] == ',' {
		next, ok := scanFrameItem(name, i+1)
		if !ok {
			break
		}
		i = next
	}

	// Optional homogeneous run of padding markers.
	if i < len(name) && (name[i] == '#' || name[i] == '@') {
		marker := name[i]
		for i < len(name) && name[i] == marker {
			i++
		}
	}

	if i != len(name) && name[i] != '.' {
		return 0, false
	}
	return i, true
}

// scanFrameItem consumes one "start[-end[(x|:)step]]" item beginning at i.
// Sub-pieces are consumed only when complete, so "1-" ends after "1" and
// "1-5x" ends after "1-5".
func scanFrameItem(name string, i int) (int, bool) {
	i, ok := scanDigits(name, i)
	if !ok {
		return 0, false
	}
	end := i

	if i < len(name) && name[i] == '-' {
		j, ok := scanDigits(name, i+1)
		if ok {
			end = j
			if j < len(name) && (name[j] == 'x' || name[j] == ':') {
				k := j + 1
				if k < len(name) && name[k] == '-' {
					k++
				}
				if k, ok := scanDigits(name, k); ok {
					end = k
				}
			}
		}
	}
	return end, true
}

func scanDigits(name string, i int) (int, bool) {
	start := i
	for i < len(name) && isDigit(name[i]) {
		i++
	}
	return i, i > start
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ExpandFrameSpec expands a frame-range expression into a sorted list of
// unique frame numbers. "1-5" counts up, "5-1x-1" counts down, and comma
// groups are unioned: "1-10x2,20" yields 1 3 5 7 9 20. A range whose step
// walks away from its end contributes nothing. A trailing run of padding
// markers is ignored. Returns ErrMalformedPattern when the expression does
// not follow the frame-range grammar; an empty expression expands to an
// empty list.
func ExpandFrameSpec(spec string) ([]int, error) {
	spec = strings.TrimRight(spec, "#@")
	if spec == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	for _, item := range strings.Split(spec, ",") {
		if err := expandFrameItem(item, seen); err != nil {
			return nil, err
		}
	}

	frames := make([]int, 0, len(seen))
	for f := range seen {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames, nil
}

func expandFrameItem(item string, seen map[int]struct{}) error {
	m := frameItemRe.FindStringSubmatch(item)
	if m == nil {
		return fmt.Errorf("%w: bad frame range %q", ErrMalformedPattern, item)
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("%w: bad frame range %q", ErrMalformedPattern, item)
	}
	end := start
	if m[2] != "" {
		if end, err = strconv.Atoi(m[2]); err != nil {
			return fmt.Errorf("%w: bad frame range %q", ErrMalformedPattern, item)
		}
	}
	step := 1
	if m[3] != "" {
		if step, err = strconv.Atoi(m[3]); err != nil || step == 0 {
			return fmt.Errorf("%w: bad step in %q", ErrMalformedPattern, item)
		}
	}

	if step > 0 {
		for f := start; f <= end; f += step {
			seen[f] = struct{}{}
		}
	} else {
		for f := start; f >= end; f += step {
			seen[f] = struct{}{}
		}
	}
	return nil
}

// CalcPadding decides the zero-padding width for rendered frame numbers.
//
// Precedence, highest first: an explicit non-zero requested width is used
// as-is; a requested width of zero derives the width from the largest
// frame; a trailing run of N padding markers in the spec yields N+1;
// otherwise frames render unpadded.
func CalcPadding(frames []int, spec string, requested *int) int {
	if requested != nil && *requested != 0 {
		return *requested
	}
	if requested != nil {
		width := 1
		for _, f := range frames {
			if n := len(strconv.Itoa(f)); n > width {
				width = n
			}
		}
		return width
	}
	if n := trailingMarkerRun(spec); n > 0 {
		return n + 1
	}
	return 1
}

// trailingMarkerRun counts the "#" or "@" characters ending a frame spec.
func trailingMarkerRun(spec string) int {
	if spec == "" {
		return 0
	}
	last := spec[len(spec)-1]
	if last != '#' && last != '@' {
		return 0
	}
	n := 0
	for i := len(spec) - 1; i >= 0 && spec[i] == last; i-- {
		n++
	}
	return n
}

// padFrame renders a frame number left-padded with zeros to width.
func padFrame(frame, width int) string {
	return fmt.Sprintf("%0*d", width, frame)
}

// ExpandSequence renders the concrete per-frame file names described by a
// sequence path, without touching the filesystem. The frame range in the
// name is expanded and each frame substituted back, zero-padded per
// [CalcPadding]. A path with no frame range (or one that expands to no
// frames) comes back as itself, unchanged.
func ExpandSequence(path string, options ...Option) ([]string, error) {
	o := newOptions(options...)
	dir, name := filepath.Split(path)

	spec := FindFrameSpec(name)
	if spec.Spec == "" {
		return []string{path}, nil
	}

	frames, err := ExpandFrameSpec(spec.Spec)
	if err != nil {
		return nil, &PathError{Op: "expand", Path: path, Err: err}
	}
	if len(frames) == 0 {
		return []string{path}, nil
	}

	width := CalcPadding(frames, spec.Spec, o.Padding)
	names := make([]string, 0, len(frames))
	for _, frame := range frames {
		names = append(names, dir+spec.Prefix+padFrame(frame, width)+spec.Suffix)
	}
	return names, nil
}
