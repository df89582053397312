package embedding

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/metrics"
	"github.com/Aleph-Alpha/tagsearch/v1/redis"
)

// FXModule provides *Client. The cache is an in-process LRU, backed by redis
// when a *redis.RedisClient is available in the container.
var FXModule = fx.Module(
	"embedding",
	fx.Provide(
		NewClientWithDI,
	),
)

// EmbeddingParams groups the dependencies of NewClientWithDI.
type EmbeddingParams struct {
	fx.In

	Config  Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics   `optional:"true"`
	Redis   *redis.RedisClient `optional:"true"`
}

// NewClientWithDI builds the client with its cache tiers.
func NewClientWithDI(p EmbeddingParams) (*Client, error) {
	p.Config.ApplyDefaults()

	var cache Cache = NewMemoryCache(p.Config.CacheSize, p.Config.CacheTTL)
	if p.Redis != nil {
		cache = NewTieredCache(cache, NewRedisCache(p.Redis))
	}

	opts := []ClientOption{WithCache(cache)}
	if p.Metrics != nil {
		opts = append(opts, WithRecorder(p.Metrics))
	}

	return NewClient(p.Config, p.Logger, opts...)
}
