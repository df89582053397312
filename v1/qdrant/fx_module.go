package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// FXModule provides the shared *Manager, also as a vectordb.Manager.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewManagerWithDI,
		func(m *Manager) vectordb.Manager { return m },
	),
	fx.Invoke(RegisterManagerLifecycle),
)

// ManagerParams groups the dependencies of NewManagerWithDI.
type ManagerParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewManagerWithDI returns the process-wide manager.
func NewManagerWithDI(p ManagerParams) (*Manager, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	return Shared(p.Config, p.Logger), nil
}

// RegisterManagerLifecycle tries to connect on start and disconnects on stop.
// A failed start-up connect is logged only; the next GetCollection retries.
func RegisterManagerLifecycle(lc fx.Lifecycle, m *Manager, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !m.Connect(ctx) {
				log.Warn("Vector store unavailable at start-up, will retry on first use", nil, map[string]interface{}{
					"collection": m.cfg.Collection,
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			m.Disconnect()
			return nil
		},
	})
}
