package postgres

import (
	"fmt"
	"time"
)

const (
	DefaultMaxOpenConns    = 50
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = time.Minute
	DefaultHealthInterval  = 10 * time.Second
)

// Config is the database configuration. The nested structs are squashed so
// that every setting sits directly under the postgres section.
type Config struct {
	Connection        Connection        `koanf:",squash"`
	ConnectionDetails ConnectionDetails `koanf:",squash"`
}

type Connection struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DbName   string `koanf:"db"`
	SSLMode  string `koanf:"sslmode"`
}

type ConnectionDetails struct {
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`

	// HealthInterval is the period of the background ping.
	HealthInterval time.Duration `koanf:"health_interval"`
}

// DSN returns the keyword/value connection string understood by pgx.
func (c Config) DSN() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		sslMode)
}

// Validate reports missing connection settings.
func (c Config) Validate() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("postgres: host is required")
	}
	if c.Connection.DbName == "" {
		return fmt.Errorf("postgres: database name is required")
	}
	return nil
}

func (d ConnectionDetails) withDefaults() ConnectionDetails {
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = DefaultMaxOpenConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = DefaultMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if d.HealthInterval == 0 {
		d.HealthInterval = DefaultHealthInterval
	}
	return d
}
