// Command tagsearch serves document ingestion and tag-filtered semantic
// search over HTTP.
//
// Configuration is read from the YAML file named by TAGSEARCH_CONFIG and
// from SECTION_FIELD environment variables; see package config.
package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/tagsearch/v1/candidate"
	"github.com/Aleph-Alpha/tagsearch/v1/config"
	"github.com/Aleph-Alpha/tagsearch/v1/embedding"
	"github.com/Aleph-Alpha/tagsearch/v1/ingest"
	"github.com/Aleph-Alpha/tagsearch/v1/kafka"
	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/metrics"
	"github.com/Aleph-Alpha/tagsearch/v1/minio"
	"github.com/Aleph-Alpha/tagsearch/v1/postgres"
	"github.com/Aleph-Alpha/tagsearch/v1/qdrant"
	"github.com/Aleph-Alpha/tagsearch/v1/redis"
	"github.com/Aleph-Alpha/tagsearch/v1/search"
	"github.com/Aleph-Alpha/tagsearch/v1/server"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
)

func main() {
	fx.New(
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
		config.FXModule,
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		redis.FXModule,
		postgres.FXModule,
		qdrant.FXModule,
		embedding.FXModule,
		candidate.FXModule,
		minio.FXModule,
		kafka.FXModule,
		fx.Provide(newPublisher),
		ingest.FXModule,
		search.FXModule,
		server.FXModule,
	).Run()
}

// newPublisher publishes ingest events through kafka when it is enabled.
func newPublisher(p *kafka.Producer) ingest.Publisher {
	if p == nil {
		return nil
	}
	return ingest.NewEventPublisher(p)
}
