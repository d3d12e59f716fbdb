// Package framekit parses, expands and resolves the file patterns used on
// VFX and animation productions: frame ranges (shot.1-100###.exr), UDIM
// tile sets (color.<UDIM>.tif) and printf-style sequences (render.%04d.exr).
//
// A pattern is an ordinary file path whose name may carry frame-range and
// UDIM placeholders. FrameKit turns such a path into the concrete per-frame
// names, a matching regular expression, or the set of files that actually
// exist on disk. The companion package
// github.com/reelworks/framekit/depot publishes files through a
// content-addressed store so identical renders are kept only once.
//
// # Frame Ranges
//
// A frame range lives between dots in the file name: a comma-separated list
// of frames and ranges with optional step, followed by padding markers
// ("#" or "@"):
//
//	frames, err := framekit.ExpandFrameSpec("1-10x2,20")
//	// [1 3 5 7 9 20]
//
//	names, err := framekit.ExpandSequence("render.1-3###.exr")
//	// [render.0001.exr render.0002.exr render.0003.exr]
//
// Frames render unpadded unless the range carries trailing padding markers
// (a run of N markers pads to N+1 digits) or [WithPadding] forces a width;
// a requested width of zero derives it from the largest frame. Out-of-order
// and overlapping items are tolerated; the expansion is always sorted and
// duplicate-free.
//
// # Resolving Against Disk
//
// [Resolve] expands a pattern and matches it against the directory listing,
// reporting both the files present and the frames still missing:
//
//	result, err := framekit.Resolve(ctx, "/shots/sq10/plate.1-240#.exr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, path := range result.Matched {
//	    fmt.Println(path)
//	}
//	if !result.Complete() {
//	    fmt.Println("still missing:", result.Missing)
//	}
//
// [WaitComplete] blocks until the set is complete, driven by filesystem
// events; render-farm consumers use it to gate on a sequence finishing.
//
// # UDIM and Sequence Markers
//
// Patterns may also carry a UDIM placeholder or printf/hash sequence
// markers. [PatternToRegexp] compiles the whole pattern into an anchored
// regular expression:
//
//	re, err := framekit.PatternToRegexp("color.<UDIM>.tif")
//	re.MatchString("color.1001.tif") // true
//
//	re, err = framekit.PatternToRegexp("render.%04d.exr")
//	re.MatchString("render.0042.exr") // true
//
// Behaviour is adjusted through functional options: [WithUDIMIdentifier],
// [WithStrictUDIM], [WithMatchHashLength], [WithPadding].
//
// # File Selection
//
// The [Selector] interface filters directory walks, with glob, predicate
// and boolean combinators:
//
//	selector := framekit.And(
//	    framekit.Glob("*.exr"),
//	    framekit.FuncSelector(func(e *framekit.Entry) bool {
//	        return e.Size > 0
//	    }),
//	)
//	entries, err := framekit.ListFiles(ctx, "/shots/sq10", selector, true)
//
// # Error Handling
//
// Failures carry sentinel errors wrapped in [PathError]:
//
//	_, err := framekit.Resolve(ctx, "/no/such/dir/plate.1-5#.exr")
//	if framekit.IsNotExist(err) {
//	    // directory is gone
//	}
//
//	var pathErr *framekit.PathError
//	if errors.As(err, &pathErr) {
//	    fmt.Printf("op: %s, path: %s\n", pathErr.Op, pathErr.Path)
//	}
//
// Parsing never fails on ambiguity: a name with no recognizable frame
// range is treated as a literal. [ErrMalformedPattern] is reserved for
// ranges that parse but cannot be expanded, such as a zero step.
//
// # Configuration
//
// Defaults load from BEAVER_FRAMEKIT_* environment variables, optionally
// overlaid by a framekit.yaml project file:
//
//	cfg, err := framekit.GetConfig()
//	result, err := framekit.Resolve(ctx, pattern, cfg.PatternOptions()...)
package framekit
