package kafka

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic        = "tagsearch.documents"
	DefaultRequiredAcks = kafka.RequireAll
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchTimeout = 50 * time.Millisecond
)

// Config configures the event producer.
type Config struct {
	// Enabled turns publishing on. When false NewProducerWithDI provides nil.
	Enabled bool `koanf:"enabled"`

	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`

	RequiredAcks kafka.RequiredAcks `koanf:"required_acks"`
	MaxAttempts  int                `koanf:"max_attempts"`
	WriteTimeout time.Duration      `koanf:"write_timeout"`
	BatchTimeout time.Duration      `koanf:"batch_timeout"`

	// CompressionCodec is one of gzip, snappy, lz4, zstd or empty for none.
	CompressionCodec string `koanf:"compression_codec"`

	TLS  TLSConfig  `koanf:"tls"`
	SASL SASLConfig `koanf:"sasl"`
}

// TLSConfig enables TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `koanf:"enabled"`
	CACertPath         string `koanf:"ca_cert_path"`
	ClientCertPath     string `koanf:"client_cert_path"`
	ClientKeyPath      string `koanf:"client_key_path"`
	InsecureSkipVerify bool   `koanf:"insecure_skip_verify"`
}

// SASLConfig enables SASL authentication.
type SASLConfig struct {
	Enabled bool `koanf:"enabled"`

	// Mechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512.
	Mechanism string `koanf:"mechanism"`
	Username  string `koanf:"username"`
	Password  string `koanf:"password"`
}

func (c *Config) applyDefaults() {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
}

// Validate reports a producer configuration that cannot publish.
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("kafka: at least one broker is required")
	}
	switch c.CompressionCodec {
	case "", "gzip", "snappy", "lz4", "zstd":
	default:
		return errors.New("kafka: unsupported compression codec " + c.CompressionCodec)
	}
	return nil
}
