// Package ingest indexes document text into the vector store.
//
// [Pipeline.Ingest] splits the text into overlapping chunks, embeds them in
// one batch and replaces whatever was stored for the owning ID. Chunk records
// have stable IDs, so the replacement is an upsert of the new chunks followed
// by deleting chunk numbers beyond the new count:
//
//	summary, err := pipeline.Ingest(ctx, text, 42)
//	if errors.Is(err, ingest.ErrIngestInProgress) {
//	    // another upload of document 42 is being indexed
//	}
//
// With Redis configured, concurrent ingestions of one owning ID are rejected
// instead of interleaving their writes.
package ingest
