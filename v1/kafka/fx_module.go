package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
)

// FXModule provides *Producer, or nil when publishing is disabled.
var FXModule = fx.Module("kafka",
	fx.Provide(NewProducerWithDI),
	fx.Invoke(RegisterProducerLifecycle),
)

// ProducerParams groups the dependencies of NewProducerWithDI.
type ProducerParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
	Tracer *tracer.Tracer `optional:"true"`
}

func NewProducerWithDI(p ProducerParams) (*Producer, error) {
	if !p.Config.Enabled {
		return nil, nil
	}
	producer, err := NewProducer(p.Config, p.Logger)
	if err != nil {
		return nil, err
	}
	if p.Tracer != nil {
		producer.WithCarrier(p.Tracer)
	}
	return producer, nil
}

// ProducerLifecycleParams groups the dependencies of RegisterProducerLifecycle.
type ProducerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Producer  *Producer `optional:"true"`
	Logger    *logger.Logger
}

// RegisterProducerLifecycle flushes and closes the writer on stop.
func RegisterProducerLifecycle(p ProducerLifecycleParams) {
	if p.Producer == nil {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("closing kafka producer...", nil, nil)
			return p.Producer.Close()
		},
	})
}
