// Package qdrant stores and searches chunk embeddings in a Qdrant collection.
//
// A [Manager] owns the one gRPC connection of the process. It starts
// disconnected and connects on the first [Manager.GetCollection] or
// [Manager.Connect]; concurrent callers share a single dial. [Shared] returns
// the process-wide instance and FXModule provides it.
//
// The collection is never created here. It must exist with a single unnamed
// cosine vector of the embedding dimension:
//
//	m := qdrant.Shared(cfg, log)
//	col, err := m.GetCollection(ctx, true)
//	if errors.Is(err, qdrant.ErrCollectionNotFound) {
//	    // provision it first
//	}
//
// Every chunk is stored as one point whose ID is derived from its owning ID and
// chunk number (see [PointID]), so writing a document again overwrites its
// points in place. [Collection.DeleteStale] then prunes chunk numbers the new
// version no longer has.
//
// Filters are expressed with the database-agnostic types of package vectordb
// and translated to Qdrant conditions.
package qdrant
