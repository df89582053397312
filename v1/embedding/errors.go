package embedding

import "errors"

var (
	// ErrCountMismatch is returned when the service answers with a different
	// number of vectors than texts were sent.
	ErrCountMismatch = errors.New("embedding: response count mismatch")

	// ErrDimensionMismatch is returned when a vector has the wrong length.
	ErrDimensionMismatch = errors.New("embedding: vector dimension mismatch")

	// ErrEmptyInput is returned by providers called without texts.
	ErrEmptyInput = errors.New("embedding: no texts provided")
)
