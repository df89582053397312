package qdrant

import "errors"

var (
	// ErrConnection wraps any failure to reach the vector store.
	ErrConnection = errors.New("qdrant: connection failed")

	// ErrCollectionNotFound means the configured collection does not exist.
	ErrCollectionNotFound = errors.New("qdrant: collection not found")

	// ErrCollectionNotReady means the collection exists but can not serve queries.
	ErrCollectionNotReady = errors.New("qdrant: collection not ready")

	// ErrNotConnected is returned when the manager was disconnected mid-call.
	ErrNotConnected = errors.New("qdrant: not connected")
)
