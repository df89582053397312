package server

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/candidate"
	"github.com/Aleph-Alpha/tagsearch/v1/ingest"
	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/metrics"
	"github.com/Aleph-Alpha/tagsearch/v1/minio"
	"github.com/Aleph-Alpha/tagsearch/v1/pdf"
	"github.com/Aleph-Alpha/tagsearch/v1/search"
)

// FXModule provides the *Server and runs it for the lifetime of the app.
var FXModule = fx.Module("server",
	fx.Provide(NewServerWithDI),
	fx.Invoke(RegisterServerLifecycle),
)

// ServerParams groups the dependencies of NewServerWithDI. The archive and
// metrics are optional.
type ServerParams struct {
	fx.In

	Config   Config
	Pipeline *ingest.Pipeline
	Engine   *search.Engine
	Resolver *candidate.Resolver
	Logger   *logger.Logger
	Archive  *minio.Minio     `optional:"true"`
	Metrics  *metrics.Metrics `optional:"true"`
}

func NewServerWithDI(p ServerParams) *Server {
	var opts []Option
	if p.Archive != nil {
		opts = append(opts, WithArchiver(p.Archive))
	}
	if p.Metrics != nil {
		opts = append(opts, WithRecorder(p.Metrics))
	}
	extractor := pdf.NewExtractor(p.Config.MaxUploadBytes)
	return NewServer(p.Config, p.Pipeline, p.Engine, p.Resolver, extractor, p.Logger, opts...)
}

// RegisterServerLifecycle starts listening on start and drains on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := s.Start(); err != nil {
					s.logger.Error("http server stopped", err, nil)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
			defer cancel()
			return s.Shutdown(ctx)
		},
	})
}
