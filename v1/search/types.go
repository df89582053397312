package search

import (
	"context"
	"time"
)

// Result is one ranked passage.
type Result struct {
	// ChunkID is "<owning_id>:<chunk_number>", or the store's point ID when
	// the payload lacks either number.
	ChunkID     string  `json:"id_chunk"`
	OwningID    int64   `json:"owning_id"`
	ChunkNumber int     `json:"chunk_number"`
	Content     string  `json:"content"`
	Score       float32 `json:"score"`
}

// Embedder turns query chunks into vectors. It never fails; degraded vectors
// are all zeros.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string, useCache bool) [][]float32
}

// Recorder receives search metrics.
type Recorder interface {
	RecordSearch(start time.Time, results int)
}

// Logger is the logging surface used by this package.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
