package redis

import (
	"fmt"
	"time"
)

const (
	DefaultHost         = "localhost"
	DefaultPort         = 6379
	DefaultMaxRetries   = 3
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
	DefaultIdleTimeout  = 5 * time.Minute
)

// Config holds connection settings for a single Redis node.
type Config struct {
	// Enabled turns the client on. When false NewClientWithDI provides a nil
	// client and callers use their in-process fallbacks.
	Enabled bool `koanf:"enabled"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`

	// PoolSize is the maximum number of socket connections. 0 means 10 per CPU.
	PoolSize     int `koanf:"pool_size"`
	MinIdleConns int `koanf:"min_idle_conns"`
	MaxRetries   int `koanf:"max_retries"`

	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	TLS TLSConfig `koanf:"tls"`
}

// TLSConfig enables TLS towards Redis.
type TLSConfig struct {
	Enabled            bool   `koanf:"enabled"`
	CACertPath         string `koanf:"ca_cert_path"`
	InsecureSkipVerify bool   `koanf:"insecure_skip_verify"`
	ServerName         string `koanf:"server_name"`
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
}

// Addr is host:port.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
