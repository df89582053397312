package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/tagsearch/v1/chunker"
	"github.com/Aleph-Alpha/tagsearch/v1/qdrant"
	"github.com/Aleph-Alpha/tagsearch/v1/server"
)

const sampleYAML = `
embedding:
  endpoint: http://embed:8000/embed
  model: multilingual
  dim: 768
qdrant:
  host: qdrant
  collection: chunks
postgres:
  host: db
  port: "5432"
  db: tags
ingest:
  overlap: 20
kafka:
  brokers:
    - k1:9092
  sasl:
    mechanism: PLAIN
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithFile("")
	require.NoError(t, err)

	assert.Equal(t, DefaultServiceName, cfg.Logger.ServiceName)
	assert.Equal(t, qdrant.DefaultPort, cfg.Qdrant.Port)
	assert.Equal(t, chunker.DefaultMaxChars, cfg.Ingest.MaxChars)
	assert.Equal(t, chunker.DefaultOverlap, cfg.Ingest.Overlap)
	assert.Equal(t, server.DefaultAddress, cfg.Server.Address)
	assert.Equal(t, time.Hour, cfg.Embedding.CacheTTL)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadWithFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "http://embed:8000/embed", cfg.Embedding.Endpoint)
	assert.Equal(t, 768, cfg.Embedding.Dimension)
	assert.Equal(t, "qdrant", cfg.Qdrant.Host)
	assert.Equal(t, qdrant.DefaultPort, cfg.Qdrant.Port)
	assert.Equal(t, "db", cfg.Postgres.Connection.Host)
	assert.Equal(t, "tags", cfg.Postgres.Connection.DbName)
	assert.Equal(t, 20, cfg.Ingest.Overlap)
	assert.Equal(t, chunker.DefaultMaxChars, cfg.Ingest.MaxChars)
	assert.Equal(t, []string{"k1:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "PLAIN", cfg.Kafka.SASL.Mechanism)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesYAML(t *testing.T) {
	t.Setenv("QDRANT_HOST", "qdrant.internal")
	t.Setenv("QDRANT_TIMEOUT", "2s")
	t.Setenv("EMBEDDING_CACHE_TTL", "30m")
	t.Setenv("EMBEDDING_HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("INGEST_OVERLAP", "0")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("KAFKA_SASL_USERNAME", "svc")
	t.Setenv("REDIS_TLS_ENABLED", "true")
	t.Setenv("METRICS_ADDRESS", ":9191")

	cfg, err := LoadWithFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Host)
	assert.Equal(t, 2*time.Second, cfg.Qdrant.ConnectTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Embedding.CacheTTL)
	assert.Equal(t, 5, cfg.Embedding.HTTPTimeoutS)
	assert.Equal(t, 0, cfg.Ingest.Overlap)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "svc", cfg.Kafka.SASL.Username)
	assert.Equal(t, "PLAIN", cfg.Kafka.SASL.Mechanism)
	assert.True(t, cfg.Redis.TLS.Enabled)
	assert.Equal(t, ":9191", cfg.Metrics.Address)
}

func TestLoadReadsPathFromEnv(t *testing.T) {
	t.Setenv(PathEnv, writeConfig(t, sampleYAML))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "chunks", cfg.Qdrant.Collection)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadWithFile(t.TempDir())
	assert.Error(t, err)

	_, err = LoadWithFile(writeConfig(t, "qdrant: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadWithFile("")
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestTransformEnv(t *testing.T) {
	cases := []struct {
		key, value string
		wantKey    string
		wantValue  interface{}
	}{
		{"QDRANT_API_KEY", "k", "qdrant.api_key", "k"},
		{"POSTGRES_SSLMODE", "require", "postgres.sslmode", "require"},
		{"KAFKA_TLS_CA_CERT_PATH", "/ca.pem", "kafka.tls.ca_cert_path", "/ca.pem"},
		{"KAFKA_TOPIC", "t", "kafka.topic", "t"},
		{"KAFKA_BROKERS", "a,,b", "kafka.brokers", []string{"a", "b"}},
		{"PATH", "/usr/bin", "", nil},
		{"HOME_DIR", "/root", "", nil},
		{"QDRANT_", "x", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			key, value := transformEnv(tc.key, tc.value)
			assert.Equal(t, tc.wantKey, key)
			assert.Equal(t, tc.wantValue, value)
		})
	}
}
