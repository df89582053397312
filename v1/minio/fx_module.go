package minio

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
)

// FXModule provides *Minio, or nil when archiving is disabled.
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterLifecycle),
)

// MinioParams groups the dependencies of NewClientWithDI.
type MinioParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

func NewClientWithDI(p MinioParams) (*Minio, error) {
	if !p.Config.Enabled {
		return nil, nil
	}
	return NewClient(p.Config, p.Logger)
}

// LifecycleParams groups the dependencies of RegisterLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Minio `optional:"true"`
	Logger    *logger.Logger
}

// RegisterLifecycle checks the connection on start.
func RegisterLifecycle(p LifecycleParams) {
	if p.Client == nil {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Client.HealthCheck(ctx); err != nil {
				p.Logger.Warn("minio not reachable at startup", err, map[string]interface{}{
					"endpoint": p.Client.cfg.Endpoint,
				})
			}
			return nil
		},
	})
}
