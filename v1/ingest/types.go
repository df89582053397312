package ingest

import (
	"context"
	"errors"
	"time"
)

// ErrIngestInProgress is returned when another ingestion of the same owning ID
// holds the lock.
var ErrIngestInProgress = errors.New("ingest: another ingestion of this document is in progress")

// Summary describes a completed ingestion.
type Summary struct {
	OwningID   int64 `json:"owning_id"`
	ChunkCount int   `json:"chunk_count"`
}

// Embedder turns chunk texts into vectors. It never fails; degraded vectors
// are all zeros.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string, useCache bool) [][]float32
}

// Locker serializes ingestions per key. Lock returns ErrIngestInProgress when
// key is held elsewhere.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, err error)
}

// Publisher is told about every successful ingestion.
type Publisher interface {
	PublishIngested(ctx context.Context, s Summary) error
}

// Recorder receives ingestion metrics.
type Recorder interface {
	RecordIngest(status string, chunks int)
}

// Logger is the logging surface used by this package.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
