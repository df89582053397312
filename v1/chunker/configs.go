package chunker

const (
	// DefaultMaxChars bounds the core length of a chunk, in runes.
	DefaultMaxChars = 300

	// DefaultOverlap is how many trailing runes of the previous chunk prefix the next one.
	DefaultOverlap = 50

	// FullStop terminates every sentence inside a chunk core.
	FullStop = "。"
)

type options struct {
	maxChars int
	overlap  int
}

// Option customizes a split.
type Option func(*options)

// WithMaxChars sets the maximum core length in runes. Values below 2 are raised
// to 2 so a one-rune piece plus its full stop still fits.
func WithMaxChars(n int) Option {
	return func(o *options) {
		o.maxChars = n
	}
}

// WithOverlap sets how many trailing runes of the previous core are prepended to
// the next chunk. Zero or negative disables prefixing.
func WithOverlap(n int) Option {
	return func(o *options) {
		o.overlap = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxChars: DefaultMaxChars, overlap: DefaultOverlap}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxChars < 2 {
		o.maxChars = 2
	}
	return o
}
