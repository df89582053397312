package ingest

import (
	"context"
	"strconv"
	"time"
)

// EventDocumentIngested is the type of the event published after ingestion.
const EventDocumentIngested = "document.ingested"

// DocumentIngested is the published event body.
type DocumentIngested struct {
	Type       string    `json:"type"`
	OwningID   int64     `json:"owning_id"`
	ChunkCount int       `json:"chunk_count"`
	IngestedAt time.Time `json:"ingested_at"`
}

// JSONProducer sends one JSON-encoded message. *kafka.Producer implements it.
type JSONProducer interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// EventPublisher publishes DocumentIngested events keyed by owning ID, so
// all events of one document land in the same partition.
type EventPublisher struct {
	producer JSONProducer
	now      func() time.Time
}

// NewEventPublisher returns a Publisher writing through producer.
func NewEventPublisher(producer JSONProducer) *EventPublisher {
	return &EventPublisher{producer: producer, now: time.Now}
}

// PublishIngested implements Publisher.
func (p *EventPublisher) PublishIngested(ctx context.Context, s Summary) error {
	return p.producer.PublishJSON(ctx, strconv.FormatInt(s.OwningID, 10), DocumentIngested{
		Type:       EventDocumentIngested,
		OwningID:   s.OwningID,
		ChunkCount: s.ChunkCount,
		IngestedAt: p.now().UTC(),
	})
}
