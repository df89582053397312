package ingest

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/tagsearch/v1/chunker"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// Pipeline turns document text into the vector records of its owning ID.
type Pipeline struct {
	cfg       Config
	manager   vectordb.Manager
	embedder  Embedder
	logger    Logger
	tracer    *tracer.Tracer
	locker    Locker
	publisher Publisher
	recorder  Recorder
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConfig overrides chunking and lock settings.
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) { p.cfg = cfg }
}

// WithLocker serializes ingestions of the same owning ID through l.
func WithLocker(l Locker) Option {
	return func(p *Pipeline) { p.locker = l }
}

// WithPublisher announces successful ingestions through pub.
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithRecorder reports ingestion counts to r.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithTracer wraps every ingestion in a span.
func WithTracer(t *tracer.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// NewPipeline returns a pipeline writing to the collection of manager.
func NewPipeline(manager vectordb.Manager, embedder Embedder, logger Logger, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:      DefaultConfig(),
		manager:  manager,
		embedder: embedder,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cfg.ApplyDefaults()
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Ingest chunks text, embeds every chunk and replaces the stored records of
// owningID with the result.
//
// New records are written under stable IDs first and stale chunk numbers are
// pruned afterwards, so concurrent searches see either the old or the new
// version of a chunk but never an owner without records. Text without any
// chunk removes the owner's records. Embedding outages degrade vectors and do
// not fail the call; vector store errors do.
func (p *Pipeline) Ingest(ctx context.Context, text string, owningID int64) (Summary, error) {
	ctx, span := p.tracer.StartSpan(ctx, "ingest.Ingest")
	defer span.End()
	p.tracer.SetAttributes(span, map[string]interface{}{"ingest.owning_id": owningID})

	summary, err := p.ingest(ctx, text, owningID)
	if err != nil {
		p.tracer.RecordErrorOnSpan(span, err)
		p.record(statusFailed, 0)
		p.logger.ErrorWithContext(ctx, "Ingestion failed", err, map[string]interface{}{
			"owning_id": owningID,
		})
		return Summary{}, err
	}

	p.record(statusOK, summary.ChunkCount)
	p.logger.InfoWithContext(ctx, "Document ingested", nil, map[string]interface{}{
		"owning_id":   owningID,
		"chunk_count": summary.ChunkCount,
	})

	if p.publisher != nil {
		if err := p.publisher.PublishIngested(ctx, summary); err != nil {
			p.logger.WarnWithContext(ctx, "Failed to publish ingestion event", err, map[string]interface{}{
				"owning_id": owningID,
			})
		}
	}
	return summary, nil
}

func (p *Pipeline) ingest(ctx context.Context, text string, owningID int64) (Summary, error) {
	col, err := p.manager.GetCollection(ctx, false)
	if err != nil {
		return Summary{}, fmt.Errorf("ingest: %w", err)
	}

	chunks := chunker.Split(text, chunker.WithMaxChars(p.cfg.MaxChars), chunker.WithOverlap(p.cfg.Overlap))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	var vectors [][]float32
	if len(texts) > 0 {
		vectors = p.embedder.EmbedBatch(ctx, texts, true)
	}

	records := make([]vectordb.Record, len(chunks))
	for i, c := range chunks {
		records[i] = vectordb.Record{
			OwningID:    owningID,
			ChunkNumber: c.Sequence,
			Text:        c.Text,
			Vector:      vectors[i],
		}
	}

	unlock, err := p.lock(ctx, owningID)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			p.logger.WarnWithContext(ctx, "Failed to release ingest lock", err, map[string]interface{}{
				"owning_id": owningID,
			})
		}
	}()

	if err := replace(ctx, col, owningID, records); err != nil {
		return Summary{}, err
	}
	return Summary{OwningID: owningID, ChunkCount: len(records)}, nil
}

func (p *Pipeline) lock(ctx context.Context, owningID int64) (func(context.Context) error, error) {
	if p.locker == nil {
		return func(context.Context) error { return nil }, nil
	}
	return p.locker.Lock(ctx, lockKey(owningID), p.cfg.LockTTL)
}

func replace(ctx context.Context, col vectordb.Collection, owningID int64, records []vectordb.Record) error {
	if len(records) == 0 {
		if err := col.DeleteByOwner(ctx, owningID); err != nil {
			return fmt.Errorf("ingest: remove records of %d: %w", owningID, err)
		}
		return nil
	}

	if err := col.Upsert(ctx, records); err != nil {
		return fmt.Errorf("ingest: write %d records of %d: %w", len(records), owningID, err)
	}
	if err := col.DeleteStale(ctx, owningID, len(records)); err != nil {
		return fmt.Errorf("ingest: prune stale records of %d: %w", owningID, err)
	}
	return nil
}

func (p *Pipeline) record(status string, chunks int) {
	if p.recorder != nil {
		p.recorder.RecordIngest(status, chunks)
	}
}
