package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Connection: Connection{
		Host: "db", Port: "5432", User: "u", Password: "p", DbName: "tags",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tags sslmode=disable", cfg.DSN())

	cfg.Connection.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{Connection: Connection{Host: "db"}}.Validate())
	assert.NoError(t, Config{Connection: Connection{Host: "db", DbName: "tags"}}.Validate())
}

func TestConnectionDetails_Defaults(t *testing.T) {
	d := ConnectionDetails{MaxOpenConns: 5}.withDefaults()
	assert.Equal(t, 5, d.MaxOpenConns)
	assert.Equal(t, DefaultMaxIdleConns, d.MaxIdleConns)
	assert.Equal(t, time.Minute, d.ConnMaxLifetime)
	assert.Equal(t, DefaultHealthInterval, d.HealthInterval)
}
