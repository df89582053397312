package search

import "github.com/Aleph-Alpha/tagsearch/v1/vectordb"

const (
	// DefaultTopK applies when a caller passes topK <= 0.
	DefaultTopK = 5

	// Queries are chunked like documents but with a smaller overlap.
	DefaultQueryMaxChars = 300
	DefaultQueryOverlap  = 30

	// MessageNoCandidates explains an empty result caused by an empty candidate set.
	MessageNoCandidates = "no matching candidates"
)

// OutputFields are the payload fields requested from the store, fallback
// names included.
var OutputFields = vectordb.PayloadKeys()
