// Package metrics exposes Prometheus metrics for the search service.
//
// NewMetrics builds a dedicated registry (every series carries a "service"
// label when Config.ServiceName is set) and registers the pipeline collectors:
//
//   - http_requests_total, http_request_duration_seconds
//   - embedding_cache_lookups_total{result}, embedding_degraded_total
//   - ingest_documents_total{status}, ingest_chunks_total
//   - search_duration_seconds, search_results_total
//
// The FXModule starts the promhttp server on Config.Address and stops it with
// the application.
package metrics
