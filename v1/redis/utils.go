package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func translate(err error) error {
	if errors.Is(err, redis.Nil) {
		return Nil
	}
	return err
}

// Ping checks that the server answers.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.Client().Ping(ctx).Err()
}

// Get returns the string value of key, or Nil when it does not exist.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.Client().Get(ctx, key).Result()
	return val, translate(err)
}

// Set stores value under key. A zero ttl means no expiry.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.Client().Set(ctx, key, value, ttl).Err()
}

// SetNX stores value only if key does not exist and reports whether it did.
func (r *RedisClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return r.Client().SetNX(ctx, key, value, ttl).Result()
}

// MGet returns the values of keys in order; missing keys yield nil entries.
func (r *RedisClient) MGet(ctx context.Context, keys ...string) ([]interface{}, error) {
	if len(keys) == 0 {
		return []interface{}{}, nil
	}
	return r.Client().MGet(ctx, keys...).Result()
}

// Delete removes keys and returns how many existed.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return r.Client().Del(ctx, keys...).Result()
}

// SetJSON serializes value to JSON and stores it with ttl.
func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}

// GetJSON loads key and decodes it into dest.
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

// Lock is a single-holder lock on a Redis key.
type Lock struct {
	client *RedisClient
	key    string
	value  string
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// AcquireLock takes key for at most ttl. It returns ErrLockNotAcquired when the
// key is already held.
func (r *RedisClient) AcquireLock(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	value := uuid.NewString()

	acquired, err := r.SetNX(ctx, key, value, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return nil, ErrLockNotAcquired
	}

	return &Lock{client: r, key: key, value: value}, nil
}

// Release deletes the lock if this holder still owns it.
func (l *Lock) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.client.Client(), []string{l.key}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}
