package framekit

import "time"

// Option represents a configuration option
type Option func(*Options)

// Options contains all possible options for pattern and sequence operations
type Options struct {
	// UDIMIdentifier is the token that stands in for a UDIM tile number in
	// a pattern, "<UDIM>" by default
	UDIMIdentifier string

	// StrictUDIM restricts UDIM matching to exactly four digits with a
	// non-zero leading digit. When false, trailing characters after the
	// tile number are tolerated
	StrictUDIM bool

	// MatchHashLength makes a #-run match exactly as many digits as the
	// run is long instead of any number of digits
	MatchHashLength bool

	// Padding is the requested frame number width. Nil means no request
	// was made; zero derives the width from the largest expanded frame
	Padding *int

	// Debounce is how long a watched directory must stay quiet before a
	// sequence completeness re-check
	Debounce time.Duration
}

// newOptions applies the given options over the defaults
func newOptions(options ...Option) *Options {
	opts := &Options{
		UDIMIdentifier: DefaultUDIMIdentifier,
		StrictUDIM:     true,
		Debounce:       DefaultDebounce,
	}
	for _, option := range options {
		option(opts)
	}
	return opts
}

// WithUDIMIdentifier sets the token that stands in for a UDIM tile number
func WithUDIMIdentifier(identifier string) Option {
	return func(o *Options) {
		o.UDIMIdentifier = identifier
	}
}

// WithStrictUDIM enables or disables strict four-digit UDIM matching
func WithStrictUDIM(strict bool) Option {
	return func(o *Options) {
		o.StrictUDIM = strict
	}
}

// WithMatchHashLength makes #-runs match exactly their own length in digits
func WithMatchHashLength(match bool) Option {
	return func(o *Options) {
		o.MatchHashLength = match
	}
}

// WithPadding requests a frame number width. Zero derives the width from
// the largest expanded frame; omitting the option leaves frames unpadded
// unless the range carries padding markers
func WithPadding(width int) Option {
	return func(o *Options) {
		o.Padding = &width
	}
}

// WithDebounce sets the quiet period between filesystem events and a
// sequence completeness re-check
func WithDebounce(d time.Duration) Option {
	return func(o *Options) {
		o.Debounce = d
	}
}
