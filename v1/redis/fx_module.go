package redis

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
)

// FXModule provides *RedisClient, or a nil client when Config.Enabled is false.
// Consumers declare the dependency as optional and check for nil.
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams groups the dependencies of NewClientWithDI.
type RedisParams struct {
	fx.In

	Config Config
	Logger *logger.Logger `optional:"true"`
}

// NewClientWithDI builds the client from the container.
func NewClientWithDI(p RedisParams) (*RedisClient, error) {
	if !p.Config.Enabled {
		return nil, nil
	}
	var log Logger
	if p.Logger != nil {
		log = p.Logger
	}
	return NewClient(p.Config, log)
}

// RedisLifecycleParams groups the dependencies of RegisterRedisLifecycle.
type RedisLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RedisClient `optional:"true"`
}

// RegisterRedisLifecycle pings the server on start and closes the pool on stop.
func RegisterRedisLifecycle(p RedisLifecycleParams) {
	if p.Client == nil {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Client.Ping(ctx); err != nil {
				return fmt.Errorf("redis: ping %s: %w", p.Client.cfg.Addr(), err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return p.Client.Close()
		},
	})
}
