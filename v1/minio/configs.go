package minio

import (
	"errors"
	"time"
)

const (
	DefaultRegion      = "us-east-1"
	DefaultPrefix      = "documents"
	DefaultInitTimeout = 30 * time.Second
)

// Config holds the settings for the document archive bucket.
type Config struct {
	// Enabled turns archiving on. When false NewClientWithDI provides a nil client.
	Enabled bool `koanf:"enabled"`

	Endpoint        string `koanf:"endpoint"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	UseSSL          bool   `koanf:"use_ssl"`
	BucketName      string `koanf:"bucket"`
	Region          string `koanf:"region"`

	// Prefix is prepended to every object key.
	Prefix string `koanf:"prefix"`

	InitTimeout time.Duration `koanf:"init_timeout"`
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.InitTimeout <= 0 {
		c.InitTimeout = DefaultInitTimeout
	}
}

// Validate reports missing connection settings.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("minio endpoint cannot be empty")
	}
	if c.BucketName == "" {
		return errors.New("minio bucket name cannot be empty")
	}
	return nil
}
