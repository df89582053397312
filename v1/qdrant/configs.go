package qdrant

import (
	"fmt"
	"time"
)

const (
	DefaultHost           = "localhost"
	DefaultPort           = 6334
	DefaultConnectTimeout = 5 * time.Second
)

// Config holds the connection settings of the vector store and the name of the
// one collection the service reads and writes.
type Config struct {
	Host string `koanf:"host"`

	// Port is the gRPC port, 6334 by default.
	Port int `koanf:"port"`

	ApiKey string `koanf:"api_key"`

	UseTLS bool `koanf:"use_tls"`

	// Collection must be provisioned out-of-band; it is never created here.
	Collection string `koanf:"collection"`

	// ConnectTimeout bounds the health check performed when connecting.
	ConnectTimeout time.Duration `koanf:"timeout"`

	CheckCompatibility bool `koanf:"check_compatibility"`
}

// DefaultConfig returns a config pointing at a local Qdrant.
func DefaultConfig() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		ConnectTimeout: DefaultConnectTimeout,
	}
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
}

// Validate reports missing settings.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("qdrant: collection name cannot be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("qdrant: invalid port %d", c.Port)
	}
	return nil
}
