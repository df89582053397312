package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is a per-process LRU with a fixed TTL.
type MemoryCache struct {
	lru *expirable.LRU[string, []float32]
}

// NewMemoryCache keeps at most size entries, each for ttl.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, []float32](size, nil, ttl)}
}

// GetMany returns copies of the entries present for keys.
func (m *MemoryCache) GetMany(_ context.Context, keys []string) (map[string][]float32, error) {
	out := make(map[string][]float32, len(keys))
	for _, k := range keys {
		if v, ok := m.lru.Get(k); ok {
			out[k] = slices.Clone(v)
		}
	}
	return out, nil
}

// SetMany stores copies of entries. The ttl argument is ignored; the LRU was built with its own.
func (m *MemoryCache) SetMany(_ context.Context, entries map[string][]float32, _ time.Duration) error {
	for k, v := range entries {
		m.lru.Add(k, slices.Clone(v))
	}
	return nil
}

// KeyValueStore is the subset of the redis client used by RedisCache.
type KeyValueStore interface {
	MGet(ctx context.Context, keys ...string) ([]interface{}, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisCache shares vectors between processes. Values are JSON arrays.
type RedisCache struct {
	store KeyValueStore
}

// NewRedisCache wraps store.
func NewRedisCache(store KeyValueStore) *RedisCache {
	return &RedisCache{store: store}
}

// GetMany fetches keys with a single MGET. Undecodable values count as misses.
func (r *RedisCache) GetMany(ctx context.Context, keys []string) (map[string][]float32, error) {
	out := make(map[string][]float32, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := r.store.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("embedding cache: mget: %w", err)
	}

	for i, raw := range values {
		if i >= len(keys) {
			break
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		var vec []float32
		if err := json.Unmarshal([]byte(s), &vec); err != nil {
			continue
		}
		out[keys[i]] = vec
	}
	return out, nil
}

// SetMany writes every entry with ttl and returns the joined write errors.
func (r *RedisCache) SetMany(ctx context.Context, entries map[string][]float32, ttl time.Duration) error {
	var errs []error
	for k, v := range entries {
		if err := r.store.SetJSON(ctx, k, v, ttl); err != nil {
			errs = append(errs, fmt.Errorf("embedding cache: set %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// TieredCache reads the first tier, falls through to the second for the rest and
// back-fills the first tier with what the second one had.
type TieredCache struct {
	near Cache
	far  Cache
}

// NewTieredCache combines an in-process tier with a shared one.
func NewTieredCache(near, far Cache) *TieredCache {
	return &TieredCache{near: near, far: far}
}

// GetMany implements Cache. An error from the far tier is returned together with
// whatever the near tier found.
func (t *TieredCache) GetMany(ctx context.Context, keys []string) (map[string][]float32, error) {
	found, err := t.near.GetMany(ctx, keys)
	if err != nil {
		found = make(map[string][]float32, len(keys))
	}

	var rest []string
	for _, k := range keys {
		if _, ok := found[k]; !ok {
			rest = append(rest, k)
		}
	}
	if len(rest) == 0 {
		return found, nil
	}

	far, err := t.far.GetMany(ctx, rest)
	if err != nil {
		return found, err
	}
	if len(far) > 0 {
		_ = t.near.SetMany(ctx, far, 0)
		for k, v := range far {
			found[k] = v
		}
	}
	return found, nil
}

// SetMany writes both tiers.
func (t *TieredCache) SetMany(ctx context.Context, entries map[string][]float32, ttl time.Duration) error {
	return errors.Join(
		t.near.SetMany(ctx, entries, ttl),
		t.far.SetMany(ctx, entries, ttl),
	)
}
