package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated Prometheus registry, the HTTP server exposing it and
// the collectors used by the search pipeline.
type Metrics struct {
	Server *http.Server

	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	embeddingDegraded prometheus.Counter
	ingestDocuments   *prometheus.CounterVec
	ingestChunks      prometheus.Counter
	searchDuration    prometheus.Histogram
	searchResults     prometheus.Counter
}

// NewMetrics creates the registry, registers the pipeline collectors and prepares
// (but does not start) the HTTP server.
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	m := &Metrics{
		Registry:   registry,
		registerer: registerer,
		namespace:  cfg.Namespace,
	}

	m.requestsTotal = m.CreateCounter("http_requests_total", "Total number of processed HTTP requests", []string{"route", "status"})
	m.requestDuration = m.CreateHistogram("http_request_duration_seconds", "Duration of HTTP requests in seconds", []string{"route"}, prometheus.DefBuckets)
	m.cacheLookups = m.CreateCounter("embedding_cache_lookups_total", "Embedding cache lookups by result", []string{"result"})

	m.embeddingDegraded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "embedding_degraded_total",
		Help:      "Texts that received a zero-vector fallback",
	})
	m.ingestDocuments = m.CreateCounter("ingest_documents_total", "Ingested documents by status", []string{"status"})
	m.ingestChunks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "ingest_chunks_total",
		Help:      "Chunks written to the vector store",
	})
	m.searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of candidate-scoped searches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	m.searchResults = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "search_results_total",
		Help:      "Results returned by searches",
	})

	registerer.MustRegister(
		m.embeddingDegraded,
		m.ingestChunks,
		m.searchDuration,
		m.searchResults,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}
