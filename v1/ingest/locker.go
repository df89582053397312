package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/Aleph-Alpha/tagsearch/v1/redis"
)

// RedisLocker implements Locker with Redis SET NX locks.
type RedisLocker struct {
	client *redis.RedisClient
}

// NewRedisLocker returns a Locker backed by client.
func NewRedisLocker(client *redis.RedisClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// Lock implements Locker.
func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.AcquireLock(ctx, key, ttl)
	if errors.Is(err, redis.ErrLockNotAcquired) {
		return nil, ErrIngestInProgress
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redis.ErrLockNotHeld) {
			// expired while the replace was running
			return nil
		}
		return err
	}, nil
}
