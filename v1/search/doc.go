// Package search runs candidate-scoped semantic search over ingested chunks.
//
// A query is split with the same chunker used for documents. Each resulting
// chunk is embedded and sent as its own query vector in a single batch call,
// with a filter restricting hits to the candidate owning IDs. The per-vector
// hit lists are merged by [MergeResults]: flattened, deduplicated by chunk,
// sorted by raw similarity and cut to topK. Scores are not normalized or
// thresholded.
//
//	results, err := engine.Search(ctx, "distributed systems internship", candidates, 5)
//
// An empty candidate set short-circuits to an empty result; the store is never
// queried without the owner filter.
package search
