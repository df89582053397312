// Package embedding converts text into fixed-dimension vectors through an
// external HTTP embedding service.
//
// The service receives one POST per batch:
//
//	{"model": "<model>", "input": ["text", ...]}
//
// and must answer with one vector per text:
//
//	{"embeddings": [[0.1, ...], ...]}
//
// Client.EmbedBatch puts a read-through cache in front of the service. Keys are
// derived from the model and a SHA-256 of the text (see CacheKey); only misses
// are sent, and fresh vectors are written back with Config.CacheTTL. The fx
// module layers an in-process LRU over redis.
//
// Availability wins over correctness here: a network error, a bad status, a
// malformed body or a count/dimension mismatch is logged and every affected
// text gets an all-zero vector. Internally the call returns an Outcome so the
// degradation is still counted (embedding_degraded_total); zero vectors are
// never cached.
package embedding
