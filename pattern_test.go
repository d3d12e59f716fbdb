package framekit

import (
	"testing"
)

func TestSplitUDIM(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		identifier   string
		strict       bool
		wantPrefix   string
		wantFragment string
		wantSuffix   string
	}{
		{
			name:         "strict default identifier",
			input:        "color.<UDIM>.tif",
			strict:       true,
			wantPrefix:   "color.",
			wantFragment: `[1-9]\d{3}`,
			wantSuffix:   ".tif",
		},
		{
			name:         "lenient tolerates trailing characters",
			input:        "color.<UDIM>.tif",
			wantPrefix:   "color.",
			wantFragment: `[1-9]\d{3}.*`,
			wantSuffix:   ".tif",
		},
		{
			name:         "custom identifier",
			input:        "tile.%(UDIM)d.exr",
			identifier:   "%(UDIM)d",
			strict:       true,
			wantPrefix:   "tile.",
			wantFragment: `[1-9]\d{3}`,
			wantSuffix:   ".exr",
		},
		{
			name:         "first occurrence only",
			input:        "a.<UDIM>.b.<UDIM>.c",
			strict:       true,
			wantPrefix:   "a.",
			wantFragment: `[1-9]\d{3}`,
			wantSuffix:   ".b.<UDIM>.c",
		},
		{
			name:       "identifier absent",
			input:      "plate.exr",
			strict:     true,
			wantPrefix: "plate.exr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitUDIM(tt.input, tt.identifier, tt.strict)
			if got.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", got.Prefix, tt.wantPrefix)
			}
			if got.Fragment != tt.wantFragment {
				t.Errorf("Fragment = %q, want %q", got.Fragment, tt.wantFragment)
			}
			if got.Suffix != tt.wantSuffix {
				t.Errorf("Suffix = %q, want %q", got.Suffix, tt.wantSuffix)
			}
		})
	}
}

func TestSplitSequenceMarker(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		matchHashLength bool
		wantPrefix      string
		wantFragment    string
		wantSuffix      string
	}{
		{
			name:         "printf token with dot delimiter",
			input:        "render.%04d.exr",
			wantPrefix:   "render.",
			wantFragment: `\d{4}`,
			wantSuffix:   ".exr",
		},
		{
			name:         "printf token with underscore delimiter",
			input:        "render_%03d.exr",
			wantPrefix:   "render_",
			wantFragment: `\d{3}`,
			wantSuffix:   ".exr",
		},
		{
			name:         "hash run matches any digits by default",
			input:        "comp_####.png",
			wantPrefix:   "comp_",
			wantFragment: `\d+`,
			wantSuffix:   ".png",
		},
		{
			name:            "hash run matches its own length when asked",
			input:           "comp_####.png",
			matchHashLength: true,
			wantPrefix:      "comp_",
			wantFragment:    `\d{4}`,
			wantSuffix:      ".png",
		},
		{
			name:         "single hash",
			input:        "shot.#.exr",
			wantPrefix:   "shot.",
			wantFragment: `\d+`,
			wantSuffix:   ".exr",
		},
		{
			name:         "printf wins over an earlier hash run",
			input:        "a.##.b.%02d.c",
			wantPrefix:   "a.##.b.",
			wantFragment: `\d{2}`,
			wantSuffix:   ".c",
		},
		{
			name:       "printf token needs a delimiter",
			input:      "render%04d.exr",
			wantPrefix: "render%04d.exr",
		},
		{
			name:       "hash run needs a delimiter",
			input:      "comp####.png",
			wantPrefix: "comp####.png",
		},
		{
			name:       "printf token needs an explicit width",
			input:      "a.%d.b",
			wantPrefix: "a.%d.b",
		},
		{
			name:       "no marker",
			input:      "plate.exr",
			wantPrefix: "plate.exr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSequenceMarker(tt.input, tt.matchHashLength)
			if got.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", got.Prefix, tt.wantPrefix)
			}
			if got.Fragment != tt.wantFragment {
				t.Errorf("Fragment = %q, want %q", got.Fragment, tt.wantFragment)
			}
			if got.Suffix != tt.wantSuffix {
				t.Errorf("Suffix = %q, want %q", got.Suffix, tt.wantSuffix)
			}
		})
	}
}

func TestComposeRegex(t *testing.T) {
	got := ComposeRegex([]Segment{
		Literal("a.b"),
		Placeholder(`\d+`),
		Literal("c+"),
	})
	want := `a\.b\d+c\+`
	if got != want {
		t.Errorf("ComposeRegex = %q, want %q", got, want)
	}
}

func TestPatternToRegexp(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		options []Option
		match   []string
		noMatch []string
	}{
		{
			name:    "strict udim",
			pattern: "color.<UDIM>.tif",
			match:   []string{"color.1001.tif", "color.1012.tif", "color.9999.tif"},
			noMatch: []string{"color.0999.tif", "color.101.tif", "color.1001x.tif", "xcolor.1001.tif"},
		},
		{
			name:    "lenient udim",
			pattern: "color.<UDIM>.tif",
			options: []Option{WithStrictUDIM(false)},
			match:   []string{"color.1001.tif", "color.1001_ao.tif"},
			noMatch: []string{"color.0999.tif"},
		},
		{
			name:    "printf marker",
			pattern: "render.%04d.exr",
			match:   []string{"render.0042.exr", "render.9999.exr"},
			noMatch: []string{"render.42.exr", "render.00042.exr", "prerender.0042.exr"},
		},
		{
			name:    "hash marker",
			pattern: "comp_##.png",
			match:   []string{"comp_1.png", "comp_0042.png"},
			noMatch: []string{"comp_.png", "comp_1x.png"},
		},
		{
			name:    "hash marker with exact length",
			pattern: "comp_##.png",
			options: []Option{WithMatchHashLength(true)},
			match:   []string{"comp_42.png"},
			noMatch: []string{"comp_1.png", "comp_0042.png"},
		},
		{
			name:    "udim and marker combined",
			pattern: "tex.<UDIM>.%02d.png",
			match:   []string{"tex.1001.07.png"},
			noMatch: []string{"tex.0999.07.png", "tex.1001.7.png"},
		},
		{
			name:    "plain name matches exactly",
			pattern: "plate.exr",
			match:   []string{"plate.exr"},
			noMatch: []string{"plateXexr", "plate.exr.bak", "a/plate.exr"},
		},
		{
			name:    "directory part stays literal",
			pattern: "/shows/x/color.<UDIM>.tif",
			match:   []string{"/shows/x/color.1001.tif"},
			noMatch: []string{"/shows/y/color.1001.tif"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := PatternToRegexp(tt.pattern, tt.options...)
			if err != nil {
				t.Fatalf("PatternToRegexp(%q) error = %v", tt.pattern, err)
			}
			for _, s := range tt.match {
				if !re.MatchString(s) {
					t.Errorf("%q should match %q", tt.pattern, s)
				}
			}
			for _, s := range tt.noMatch {
				if re.MatchString(s) {
					t.Errorf("%q should not match %q", tt.pattern, s)
				}
			}
		})
	}
}
