package search

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/embedding"
	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/metrics"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// FXModule provides the *Engine.
var FXModule = fx.Module("search",
	fx.Provide(NewEngineWithDI),
)

// EngineParams groups the dependencies of NewEngineWithDI.
type EngineParams struct {
	fx.In

	Manager  vectordb.Manager
	Embedder *embedding.Client
	Logger   *logger.Logger
	Tracer   *tracer.Tracer   `optional:"true"`
	Metrics  *metrics.Metrics `optional:"true"`
}

// NewEngineWithDI builds the engine from the container.
func NewEngineWithDI(p EngineParams) *Engine {
	opts := []Option{WithTracer(p.Tracer)}
	if p.Metrics != nil {
		opts = append(opts, WithRecorder(p.Metrics))
	}
	return NewEngine(p.Manager, p.Embedder, p.Logger, opts...)
}
