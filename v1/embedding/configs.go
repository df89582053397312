package embedding

import (
	"fmt"
	"time"
)

const (
	defaultHTTPTimeoutS = 30
	defaultCacheTTL     = time.Hour
	defaultCacheSize    = 4096
)

// Config describes the remote embedding service and the cache in front of it.
type Config struct {
	Endpoint     string        `koanf:"endpoint"`      // URL receiving the {model, input} POST
	Model        string        `koanf:"model"`         // model name sent with every request
	Dimension    int           `koanf:"dim"`           // expected vector length
	ServiceToken string        `koanf:"service_token"` // optional bearer token
	HTTPTimeoutS int           `koanf:"http_timeout_seconds"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	CacheSize    int           `koanf:"cache_size"` // entries kept in the in-process tier
}

// ApplyDefaults fills zero values with their defaults.
func (c *Config) ApplyDefaults() {
	if c.HTTPTimeoutS <= 0 {
		c.HTTPTimeoutS = defaultHTTPTimeoutS
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.CacheSize <= 0 {
		c.CacheSize = defaultCacheSize
	}
}

// Validate reports missing settings.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("embedding: EMBEDDING_DIM must be positive, got %d", c.Dimension)
	}
	return nil
}
