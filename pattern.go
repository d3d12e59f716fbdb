package framekit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultUDIMIdentifier is the token recognized as a UDIM tile placeholder
// when no other identifier is configured.
const DefaultUDIMIdentifier = "<UDIM>"

// UDIM tile ids are four digits starting at 1001. Lenient matching tolerates
// tools that append extra characters after the tile number.
const (
	udimStrictFragment  = `[1-9]\d{3}`
	udimLenientFragment = `[1-9]\d{3}.*`
)

var (
	printfMarkerRe = regexp.MustCompile(`[._]%(\d+)d`)
	hashMarkerRe   = regexp.MustCompile(`[._]#+`)
)

// Token is a name split around a single placeholder: the literal text
// before it, the regular-expression fragment that replaces it, and the
// literal text after it. A name with no placeholder is all Prefix.
type Token struct {
	Prefix   string
	Fragment string
	Suffix   string
}

// SplitUDIM splits a name around the first occurrence of the UDIM
// identifier. An empty identifier falls back to [DefaultUDIMIdentifier].
// Strict mode produces a fragment matching exactly four digits with a
// non-zero leading digit; lenient mode tolerates trailing characters after
// the tile number. A name without the identifier comes back whole in Prefix.
func SplitUDIM(name, identifier string, strict bool) Token {
	if identifier == "" {
		identifier = DefaultUDIMIdentifier
	}

	i := strings.Index(name, identifier)
	if i < 0 {
		return Token{Prefix: name}
	}

	fragment := udimLenientFragment
	if strict {
		fragment = udimStrictFragment
	}
	return Token{
		Prefix:   name[:i],
		Fragment: fragment,
		Suffix:   name[i+len(identifier):],
	}
}

// SplitSequenceMarker splits a name around its frame-number marker: either
// a %0Nd printf token or a run of # characters, each immediately preceded
// by "." or "_". A printf token anywhere wins over hash runs; only the
// first occurrence of the winning form is split. Printf tokens match
// exactly N digits. Hash runs match exactly their own length in digits when
// matchHashLength is true and any number of digits otherwise. The
// delimiter stays in Prefix. A name without a marker comes back whole in
// Prefix.
func SplitSequenceMarker(name string, matchHashLength bool) Token {
	if m := printfMarkerRe.FindStringSubmatchIndex(name); m != nil {
		if width, err := strconv.Atoi(name[m[2]:m[3]]); err == nil {
			return Token{
				Prefix:   name[:m[0]+1],
				Fragment: fmt.Sprintf(`\d{%d}`, width),
				Suffix:   name[m[1]:],
			}
		}
	}

	if m := hashMarkerRe.FindStringIndex(name); m != nil {
		fragment := `\d+`
		if matchHashLength {
			fragment = fmt.Sprintf(`\d{%d}`, m[1]-m[0]-1)
		}
		return Token{
			Prefix:   name[:m[0]+1],
			Fragment: fragment,
			Suffix:   name[m[1]:],
		}
	}

	return Token{Prefix: name}
}

// Segment is one piece of a parsed pattern: literal text that must match
// byte for byte, or a regular-expression fragment standing in for a
// placeholder.
type Segment struct {
	text    string
	literal bool
}

// Literal returns a segment whose text is escaped and matched verbatim.
func Literal(text string) Segment {
	return Segment{text: text, literal: true}
}

// Placeholder returns a segment holding a regular-expression fragment that
// is inserted into the composed pattern unchanged.
func Placeholder(fragment string) Segment {
	return Segment{text: fragment}
}

// ComposeRegex folds segments left to right into one regular-expression
// string. Literal segments are escaped, placeholder fragments inserted
// verbatim, and the segment order is preserved.
func ComposeRegex(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.literal {
			b.WriteString(regexp.QuoteMeta(s.text))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// patternFragment converts a path (or bare name fragment) containing UDIM
// and sequence-marker tokens into an unanchored regular-expression string.
// The directory part, if any, is matched literally.
func patternFragment(path string, o *Options) string {
	dir, name := filepath.Split(path)

	udim := SplitUDIM(name, o.UDIMIdentifier, o.StrictUDIM)
	pre := SplitSequenceMarker(udim.Prefix, o.MatchHashLength)
	post := SplitSequenceMarker(udim.Suffix, o.MatchHashLength)

	return ComposeRegex([]Segment{
		Literal(dir + pre.Prefix),
		Placeholder(pre.Fragment),
		Literal(pre.Suffix),
		Placeholder(udim.Fragment),
		Literal(post.Prefix),
		Placeholder(post.Fragment),
		Literal(post.Suffix),
	})
}

// compileAnchored compiles a pattern body so it matches complete names
// only, never substrings.
func compileAnchored(body string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`\A` + body + `\z`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPattern, err)
	}
	return re, nil
}

// PatternToRegexp compiles a path containing UDIM and sequence-marker
// tokens into an anchored regular expression matching complete paths. Text
// without any recognized token compiles to an exact-match expression.
func PatternToRegexp(path string, options ...Option) (*regexp.Regexp, error) {
	o := newOptions(options...)
	re, err := compileAnchored(patternFragment(path, o))
	if err != nil {
		return nil, &PathError{Op: "compile", Path: path, Err: err}
	}
	return re, nil
}
