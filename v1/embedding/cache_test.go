package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string]string
	ttls    map[string]time.Duration
	mgetErr error
	gets    int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) MGet(_ context.Context, keys ...string) ([]interface{}, error) {
	f.gets++
	if f.mgetErr != nil {
		return nil, f.mgetErr
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			out[i] = v
		}
	}
	return out, nil
}

func (f *fakeKV) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(b)
	f.ttls[key] = ttl
	return nil
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, time.Hour)

	require.NoError(t, c.SetMany(ctx, map[string][]float32{"a": {1}, "b": {2}}, 0))
	got, err := c.GetMany(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]float32{"a": {1}, "b": {2}}, got)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2, time.Hour)

	stored := []float32{1, 2}
	require.NoError(t, c.SetMany(ctx, map[string][]float32{"a": stored}, 0))
	stored[0] = 9

	got, err := c.GetMany(ctx, []string{"a"})
	require.NoError(t, err)
	got["a"][1] = 7

	again, err := c.GetMany(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, again["a"])
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(8, 20*time.Millisecond)
	require.NoError(t, c.SetMany(ctx, map[string][]float32{"a": {1}}, 0))

	assert.Eventually(t, func() bool {
		got, _ := c.GetMany(ctx, []string{"a"})
		return len(got) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.data["broken"] = "not json"
	c := NewRedisCache(kv)

	require.NoError(t, c.SetMany(ctx, map[string][]float32{"k": {0.5, 1.5}}, time.Minute))
	assert.Equal(t, time.Minute, kv.ttls["k"])

	got, err := c.GetMany(ctx, []string{"k", "missing", "broken"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]float32{"k": {0.5, 1.5}}, got)
}

func TestRedisCacheError(t *testing.T) {
	kv := newFakeKV()
	kv.mgetErr = errors.New("connection refused")

	_, err := NewRedisCache(kv).GetMany(context.Background(), []string{"k"})
	assert.Error(t, err)
}

func TestTieredCache(t *testing.T) {
	ctx := context.Background()
	near := NewMemoryCache(8, time.Hour)
	kv := newFakeKV()
	far := NewRedisCache(kv)
	tiered := NewTieredCache(near, far)

	require.NoError(t, far.SetMany(ctx, map[string][]float32{"shared": {3}}, time.Hour))
	require.NoError(t, tiered.SetMany(ctx, map[string][]float32{"both": {4}}, time.Hour))

	got, err := tiered.GetMany(ctx, []string{"shared", "both", "none"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]float32{"shared": {3}, "both": {4}}, got)

	// "shared" was back-filled into the near tier
	nearGot, _ := near.GetMany(ctx, []string{"shared"})
	assert.Equal(t, []float32{3}, nearGot["shared"])

	gets := kv.gets
	_, err = tiered.GetMany(ctx, []string{"shared", "both"})
	require.NoError(t, err)
	assert.Equal(t, gets, kv.gets, "all keys served by the near tier")
}

func TestTieredCacheFarError(t *testing.T) {
	ctx := context.Background()
	near := NewMemoryCache(8, time.Hour)
	require.NoError(t, near.SetMany(ctx, map[string][]float32{"a": {1}}, 0))
	kv := newFakeKV()
	kv.mgetErr = errors.New("down")

	got, err := NewTieredCache(near, NewRedisCache(kv)).GetMany(ctx, []string{"a", "b"})
	assert.Error(t, err)
	assert.Equal(t, []float32{1}, got["a"])
}
