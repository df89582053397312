package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache lookup results recorded by RecordCacheLookup.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// IncrementRequests counts a served HTTP request.
func (m *Metrics) IncrementRequests(route, status string) {
	m.requestsTotal.WithLabelValues(route, status).Inc()
}

// RecordRequestDuration observes the time elapsed since start for route.
func (m *Metrics) RecordRequestDuration(start time.Time, route string) {
	m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

// RecordCacheLookup adds n lookups with the given result (CacheHit or CacheMiss).
func (m *Metrics) RecordCacheLookup(result string, n int) {
	if n <= 0 {
		return
	}
	m.cacheLookups.WithLabelValues(result).Add(float64(n))
}

// RecordEmbeddingDegraded counts texts that were answered with zero vectors.
func (m *Metrics) RecordEmbeddingDegraded(n int) {
	if n <= 0 {
		return
	}
	m.embeddingDegraded.Add(float64(n))
}

// RecordIngest counts one ingestion attempt and, on success, its chunks.
func (m *Metrics) RecordIngest(status string, chunks int) {
	m.ingestDocuments.WithLabelValues(status).Inc()
	if chunks > 0 {
		m.ingestChunks.Add(float64(chunks))
	}
}

// RecordSearch observes a search duration and the number of results it returned.
func (m *Metrics) RecordSearch(start time.Time, results int) {
	m.searchDuration.Observe(time.Since(start).Seconds())
	if results > 0 {
		m.searchResults.Add(float64(results))
	}
}

// CreateCounter creates and registers a counter vector.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates and registers a histogram vector.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
	m.registerer.MustRegister(hist)
	return hist
}
