// Package vectordb holds the database-agnostic types shared by the ingestion
// and search paths: records, multi-vector search requests, filters, and the
// Collection/Manager interfaces implemented by the qdrant package.
//
// Results coming back from a store are read through ordered accessor lists
// (ChunkNumberAccessors, OwningIDAccessors, TextAccessors) so that payloads
// written under older field names are still understood:
//
//	n, ok := vectordb.LookupInt(result, vectordb.ChunkNumberAccessors...)
package vectordb
