package ingest

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/embedding"
	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/metrics"
	"github.com/Aleph-Alpha/tagsearch/v1/redis"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// FXModule provides the *Pipeline.
var FXModule = fx.Module("ingest",
	fx.Provide(NewPipelineWithDI),
)

// PipelineParams groups the dependencies of NewPipelineWithDI. Redis, metrics,
// tracing and the publisher are optional.
type PipelineParams struct {
	fx.In

	Config    Config
	Manager   vectordb.Manager
	Embedder  *embedding.Client
	Logger    *logger.Logger
	Tracer    *tracer.Tracer     `optional:"true"`
	Metrics   *metrics.Metrics   `optional:"true"`
	Redis     *redis.RedisClient `optional:"true"`
	Publisher Publisher          `optional:"true"`
}

// NewPipelineWithDI builds the pipeline from the container.
func NewPipelineWithDI(p PipelineParams) (*Pipeline, error) {
	opts := []Option{WithConfig(p.Config), WithTracer(p.Tracer)}
	if p.Metrics != nil {
		opts = append(opts, WithRecorder(p.Metrics))
	}
	if p.Redis != nil {
		opts = append(opts, WithLocker(NewRedisLocker(p.Redis)))
	}
	if p.Publisher != nil {
		opts = append(opts, WithPublisher(p.Publisher))
	}
	return NewPipeline(p.Manager, p.Embedder, p.Logger, opts...)
}
