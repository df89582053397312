package vectordb

import "context"

// Collection is a handle on the collection holding the document chunks.
// Implementations talk to a concrete vector database.
type Collection interface {
	// Name is the collection name in the store.
	Name() string

	// Upsert writes records, replacing any with the same owning id and chunk number.
	Upsert(ctx context.Context, records []Record) error

	// DeleteByOwner removes every record of owningID.
	DeleteByOwner(ctx context.Context, owningID int64) error

	// DeleteStale removes the records of owningID whose chunk number is >= keep.
	DeleteStale(ctx context.Context, owningID int64, keep int) error

	// CountByOwner counts the records of owningID.
	CountByOwner(ctx context.Context, owningID int64) (uint64, error)

	// Search runs every vector of the request in one round trip and returns one
	// result list per vector, in request order.
	Search(ctx context.Context, req SearchRequest) ([][]SearchResult, error)
}

// Manager hands out the collection, connecting to the store when needed.
// With load set the collection is also checked to be ready for queries.
type Manager interface {
	GetCollection(ctx context.Context, load bool) (Collection, error)
}
