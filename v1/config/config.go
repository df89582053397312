package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

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

const (
	// PathEnv names the optional YAML file loaded before the environment.
	PathEnv = "TAGSEARCH_CONFIG"

	DefaultServiceName = "tagsearch"

	maxConfigFileSize = 1024 * 1024
)

// AppConfig is the configuration of every package, keyed by section.
type AppConfig struct {
	Logger    logger.Config    `koanf:"logger"`
	Metrics   metrics.Config   `koanf:"metrics"`
	Tracer    tracer.Config    `koanf:"tracer"`
	Embedding embedding.Config `koanf:"embedding"`
	Qdrant    qdrant.Config    `koanf:"qdrant"`
	Postgres  postgres.Config  `koanf:"postgres"`
	Redis     redis.Config     `koanf:"redis"`
	Candidate candidate.Config `koanf:"candidate"`
	Ingest    ingest.Config    `koanf:"ingest"`
	Minio     minio.Config     `koanf:"minio"`
	Kafka     kafka.Config     `koanf:"kafka"`
	Server    server.Config    `koanf:"server"`
}

// nested lists the sub-sections reachable from the environment. Everything
// else splits on the first underscore only, so EMBEDDING_CACHE_TTL maps to
// embedding.cache_ttl and REDIS_TLS_ENABLED to redis.tls.enabled.
var nested = map[string][]string{
	"redis": {"tls"},
	"kafka": {"tls", "sasl"},
}

// sections are the env prefixes the loader accepts.
var sections = map[string]bool{
	"logger": true, "metrics": true, "tracer": true, "embedding": true,
	"qdrant": true, "postgres": true, "redis": true, "candidate": true,
	"ingest": true, "minio": true, "kafka": true, "server": true,
}

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"kafka.brokers": true,
}

// Load reads the YAML file named by TAGSEARCH_CONFIG, if set, then applies
// environment overrides.
func Load() (*AppConfig, error) {
	return LoadWithFile(os.Getenv(PathEnv))
}

// LoadWithFile loads path (skipped when empty) and then the environment.
//
// Precedence, highest first:
//  1. Environment variables (QDRANT_HOST, EMBEDDING_CACHE_TTL, ...)
//  2. The YAML file
//  3. Package defaults
func LoadWithFile(path string) (*AppConfig, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := defaultAppConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// transformEnv maps SECTION_FIELD to section.field. Unknown sections are
// dropped by returning an empty key.
func transformEnv(key, value string) (string, interface{}) {
	parts := strings.SplitN(strings.ToLower(key), "_", 2)
	if len(parts) != 2 || !sections[parts[0]] || parts[1] == "" {
		return "", nil
	}
	section, field := parts[0], parts[1]

	for _, sub := range nested[section] {
		if strings.HasPrefix(field, sub+"_") {
			field = sub + "." + strings.TrimPrefix(field, sub+"_")
			break
		}
	}

	path := section + "." + field
	if listKeys[path] {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return path, items
	}
	return path, value
}

// defaultAppConfig seeds the fields whose zero value is meaningful, so an
// unset ingest overlap still means the document default.
func defaultAppConfig() AppConfig {
	return AppConfig{
		Qdrant: qdrant.DefaultConfig(),
		Ingest: ingest.DefaultConfig(),
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = DefaultServiceName
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = DefaultServiceName
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = metrics.DefaultMetricsAddress
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = DefaultServiceName
	}
	c.Embedding.ApplyDefaults()
	c.Qdrant.ApplyDefaults()
	c.Candidate.ApplyDefaults()
	c.Ingest.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate checks the sections every deployment needs. Optional backends
// validate themselves when enabled.
func (c *AppConfig) Validate() error {
	if err := c.Embedding.Validate(); err != nil {
		return err
	}
	if err := c.Qdrant.Validate(); err != nil {
		return err
	}
	if err := c.Postgres.Validate(); err != nil {
		return err
	}
	if err := c.Candidate.Validate(); err != nil {
		return err
	}
	return c.Ingest.Validate()
}
