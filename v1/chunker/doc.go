// Package chunker splits document text into overlapping passages for embedding.
//
//	chunks := chunker.Split(text, chunker.WithMaxChars(300), chunker.WithOverlap(50))
//
// The corpus is mostly Chinese PDF text, so sentence boundaries include the
// full-width marks 。？！ as well as newlines. Chunks is the lazy form and can
// be ranged over more than once.
package chunker
