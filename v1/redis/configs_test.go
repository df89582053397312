package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultDialTimeout, cfg.DialTimeout)
	assert.Equal(t, "localhost:6379", cfg.Addr())
}

func TestNewClientKeepsExplicitValues(t *testing.T) {
	client, err := NewClient(Config{Host: "cache", Port: 7000, DB: 2}, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "cache:7000", client.cfg.Addr())
	assert.Equal(t, 2, client.cfg.DB)
	assert.NoError(t, client.Close())
}

func TestTLSConfigMissingCA(t *testing.T) {
	_, err := NewClient(Config{TLS: TLSConfig{Enabled: true, CACertPath: "/nonexistent/ca.pem"}}, nil)
	assert.Error(t, err)
}
