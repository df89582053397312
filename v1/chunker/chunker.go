package chunker

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Chunk is one passage of a document.
type Chunk struct {
	// Text is what gets embedded: OverlapPrefix followed by Core.
	Text string

	// Core is the chunk's own sentences, each terminated by FullStop.
	Core string

	// OverlapPrefix is the tail of the previous chunk's core. Empty for the first chunk.
	OverlapPrefix string

	// Sequence is the 0-based position of the chunk within the document.
	Sequence int
}

// Split returns every chunk of text. See Chunks for the splitting rules.
func Split(text string, opts ...Option) []Chunk {
	var out []Chunk
	for c := range Chunks(text, opts...) {
		out = append(out, c)
	}
	return out
}

// Chunks lazily splits text into bounded, overlapping passages.
//
// Sentences end at newlines and at full-width sentence marks. They are
// packed greedily into a core of at most maxChars runes; a sentence that can not
// fit on its own is cut into pieces. Each chunk after the first is prefixed with
// the last overlap runes of the previous core.
//
// The sequence holds no state between iterations and can be ranged over again.
func Chunks(text string, opts ...Option) iter.Seq[Chunk] {
	o := buildOptions(opts)

	return func(yield func(Chunk) bool) {
		var (
			buf      strings.Builder
			bufRunes int
			prevCore string
			seq      int
		)

		flush := func() bool {
			if bufRunes == 0 {
				return true
			}
			core := buf.String()
			buf.Reset()
			bufRunes = 0

			c := Chunk{Core: core, Sequence: seq}
			if seq > 0 && o.overlap > 0 {
				c.OverlapPrefix = tail(prevCore, o.overlap)
			}
			c.Text = c.OverlapPrefix + core

			prevCore = core
			seq++
			return yield(c)
		}

		for sentence := range sentences(text) {
			for _, piece := range pieces(sentence, o.maxChars-1) {
				n := utf8.RuneCountInString(piece) + 1
				if bufRunes > 0 && bufRunes+n > o.maxChars {
					if !flush() {
						return
					}
				}
				buf.WriteString(piece)
				buf.WriteString(FullStop)
				bufRunes += n
			}
		}
		flush()
	}
}

func isBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '。', '？', '！':
		return true
	}
	return false
}

// sentences yields the trimmed, non-empty sentences of text.
func sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range strings.FieldsFunc(text, isBoundary) {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// pieces cuts s into runs of at most size runes.
func pieces(s string, size int) []string {
	if utf8.RuneCountInString(s) <= size {
		return []string{s}
	}
	runes := []rune(s)
	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}

// tail returns the last n runes of s, or s when it is shorter.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
