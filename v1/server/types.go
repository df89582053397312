package server

import (
	"context"
	"io"
	"time"

	"github.com/Aleph-Alpha/tagsearch/v1/ingest"
	"github.com/Aleph-Alpha/tagsearch/v1/search"
)

// Ingester replaces the indexed content of a document. *ingest.Pipeline implements it.
type Ingester interface {
	Ingest(ctx context.Context, text string, owningID int64) (ingest.Summary, error)
}

// Searcher runs a filtered similarity search. *search.Engine implements it.
type Searcher interface {
	Search(ctx context.Context, query string, candidateIDs []int64, topK int) ([]search.Result, error)
}

// Resolver lists the candidate owning IDs of an actor. *candidate.Resolver implements it.
type Resolver interface {
	CandidateIDs(ctx context.Context, actorID int64) ([]int64, error)
}

// Extractor turns an uploaded document into plain text. *pdf.Extractor implements it.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Archiver keeps a copy of uploaded documents. *minio.Minio implements it.
type Archiver interface {
	ArchiveDocument(ctx context.Context, owningID int64, r io.Reader, size int64) (string, error)
}

// Recorder receives per-request metrics. *metrics.Metrics implements it.
type Recorder interface {
	IncrementRequests(route, status string)
	RecordRequestDuration(start time.Time, route string)
}

// Logger is the subset of *logger.Logger the server uses.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// IngestResponse is the body of a successful POST /api/v1/documents.
type IngestResponse struct {
	Status     string `json:"status"`
	OwningID   int64  `json:"owning_id"`
	ChunkCount int    `json:"chunk_count"`
}

// SearchRequest is the body of POST /api/v1/search. Exactly one of ActorID
// and CandidateIDs selects the candidate set.
type SearchRequest struct {
	Query        string  `json:"query"`
	ActorID      *int64  `json:"actor_id,omitempty"`
	CandidateIDs []int64 `json:"candidate_ids,omitempty"`
	TopK         int     `json:"top_k,omitempty"`
}

// SearchResponse is the body of a successful POST /api/v1/search.
type SearchResponse struct {
	Results []search.Result `json:"results"`
	Message string          `json:"message,omitempty"`
}

// CandidatesResponse is the body of GET /api/v1/actors/:id/candidates.
type CandidatesResponse struct {
	ActorID      int64   `json:"actor_id"`
	CandidateIDs []int64 `json:"candidate_ids"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
