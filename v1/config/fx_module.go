package config

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/candidate"
	"github.com/Aleph-Alpha/tagsearch/v1/embedding"
	"github.com/Aleph-Alpha/tagsearch/v1/ingest"
	"github.com/Aleph-Alpha/tagsearch/v1/kafka"
	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/metrics"
	"github.com/Aleph-Alpha/tagsearch/v1/minio"
	"github.com/Aleph-Alpha/tagsearch/v1/postgres"
	"github.com/Aleph-Alpha/tagsearch/v1/qdrant"
	"github.com/Aleph-Alpha/tagsearch/v1/redis"
	"github.com/Aleph-Alpha/tagsearch/v1/server"
	"github.com/Aleph-Alpha/tagsearch/v1/tracer"
)

// FXModule loads the AppConfig once and provides each section as the Config
// type of its package.
var FXModule = fx.Module("config",
	fx.Provide(
		NewAppConfig,
		func(c *AppConfig) logger.Config { return c.Logger },
		func(c *AppConfig) metrics.Config { return c.Metrics },
		func(c *AppConfig) tracer.Config { return c.Tracer },
		func(c *AppConfig) embedding.Config { return c.Embedding },
		func(c *AppConfig) qdrant.Config { return c.Qdrant },
		func(c *AppConfig) postgres.Config { return c.Postgres },
		func(c *AppConfig) redis.Config { return c.Redis },
		func(c *AppConfig) candidate.Config { return c.Candidate },
		func(c *AppConfig) ingest.Config { return c.Ingest },
		func(c *AppConfig) minio.Config { return c.Minio },
		func(c *AppConfig) kafka.Config { return c.Kafka },
		func(c *AppConfig) server.Config { return c.Server },
	),
)

// NewAppConfig loads and validates the configuration.
func NewAppConfig() (*AppConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
