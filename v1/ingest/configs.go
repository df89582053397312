package ingest

import (
	"fmt"
	"time"

	"github.com/Aleph-Alpha/tagsearch/v1/chunker"
)

const (
	DefaultLockTTL = 5 * time.Minute

	statusOK     = "ok"
	statusFailed = "failed"
)

// Config tunes document chunking and the per-document lock.
type Config struct {
	MaxChars int           `koanf:"max_chars"`
	Overlap  int           `koanf:"overlap"`
	LockTTL  time.Duration `koanf:"lock_ttl"`
}

// DefaultConfig returns the document chunking defaults.
func DefaultConfig() Config {
	return Config{
		MaxChars: chunker.DefaultMaxChars,
		Overlap:  chunker.DefaultOverlap,
		LockTTL:  DefaultLockTTL,
	}
}

// ApplyDefaults fills a zero MaxChars and LockTTL. A zero Overlap is kept.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.MaxChars == 0 {
		c.MaxChars = d.MaxChars
	}
	if c.LockTTL <= 0 {
		c.LockTTL = d.LockTTL
	}
}

// Validate rejects settings the chunker can not honor.
func (c *Config) Validate() error {
	if c.MaxChars < 2 {
		return fmt.Errorf("ingest: max_chars must be at least 2, got %d", c.MaxChars)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("ingest: overlap must not be negative, got %d", c.Overlap)
	}
	return nil
}

func lockKey(owningID int64) string {
	return fmt.Sprintf("lock:ingest:%d", owningID)
}
