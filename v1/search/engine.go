package search

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/tagsearch/v1/chunker"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// Engine answers free-text queries restricted to a set of owning IDs.
type Engine struct {
	manager  vectordb.Manager
	embedder Embedder
	logger   Logger
	tracer   *tracer.Tracer
	recorder Recorder

	maxChars int
	overlap  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer wraps every search in a span.
func WithTracer(t *tracer.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithRecorder reports latency and result counts to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithQueryChunking overrides how queries are split.
func WithQueryChunking(maxChars, overlap int) Option {
	return func(e *Engine) {
		e.maxChars = maxChars
		e.overlap = overlap
	}
}

// NewEngine returns an Engine searching the collection of manager.
func NewEngine(manager vectordb.Manager, embedder Embedder, logger Logger, opts ...Option) *Engine {
	e := &Engine{
		manager:  manager,
		embedder: embedder,
		logger:   logger,
		maxChars: DefaultQueryMaxChars,
		overlap:  DefaultQueryOverlap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns the topK passages most similar to query among the records
// owned by candidateIDs. topK <= 0 means DefaultTopK.
//
// An empty candidateIDs returns an empty result without contacting the store
// or the embedding service. Every chunk of a long query becomes its own query
// vector; hits are merged by MergeResults.
func (e *Engine) Search(ctx context.Context, query string, candidateIDs []int64, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(candidateIDs) == 0 {
		e.logger.DebugWithContext(ctx, "Skipping search without candidates", nil, nil)
		return []Result{}, nil
	}

	start := time.Now()
	ctx, span := e.tracer.StartSpan(ctx, "search.Search")
	defer span.End()
	e.tracer.SetAttributes(span, map[string]interface{}{
		"search.candidates": len(candidateIDs),
		"search.top_k":      topK,
	})

	results, err := e.search(ctx, query, candidateIDs, topK)
	if err != nil {
		e.tracer.RecordErrorOnSpan(span, err)
		e.logger.ErrorWithContext(ctx, "Search failed", err, map[string]interface{}{
			"candidates": len(candidateIDs),
		})
		return nil, err
	}

	if e.recorder != nil {
		e.recorder.RecordSearch(start, len(results))
	}
	e.logger.DebugWithContext(ctx, "Search completed", nil, map[string]interface{}{
		"candidates": len(candidateIDs),
		"results":    len(results),
		"took_ms":    time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (e *Engine) search(ctx context.Context, query string, candidateIDs []int64, topK int) ([]Result, error) {
	col, err := e.manager.GetCollection(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	chunks := chunker.Split(query, chunker.WithMaxChars(e.maxChars), chunker.WithOverlap(e.overlap))
	if len(chunks) == 0 {
		return []Result{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors := e.embedder.EmbedBatch(ctx, texts, true)

	lists, err := col.Search(ctx, vectordb.SearchRequest{
		Vectors: vectors,
		TopK:    topK,
		Filters: vectordb.NewFilterSet(vectordb.Must(
			vectordb.NewMatchAnyInt64(vectordb.FieldOwningID, candidateIDs),
		)),
		OutputFields: OutputFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return MergeResults(lists, topK), nil
}
