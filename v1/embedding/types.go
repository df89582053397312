package embedding

import (
	"context"
	"time"
)

// Provider turns texts into vectors. Implementations return one vector per text.
type Provider interface {
	Create(ctx context.Context, model string, texts ...string) ([][]float32, error)
}

// Cache stores vectors by key. Missing keys are simply absent from GetMany's result.
type Cache interface {
	GetMany(ctx context.Context, keys []string) (map[string][]float32, error)
	SetMany(ctx context.Context, entries map[string][]float32, ttl time.Duration) error
}

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Recorder receives cache and degradation counts.
type Recorder interface {
	RecordCacheLookup(result string, n int)
	RecordEmbeddingDegraded(n int)
}

// Outcome tells whether an internal embedding call produced real vectors.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeDegraded
)

func (o Outcome) String() string {
	if o == OutcomeDegraded {
		return "degraded"
	}
	return "ok"
}

// result is what embed returns before the public boundary collapses a
// degraded outcome into zero vectors.
type result struct {
	vectors [][]float32
	outcome Outcome
	err     error
}
