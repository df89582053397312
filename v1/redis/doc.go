// Package redis wraps go-redis for the two shared concerns of the service:
// the embedding vector cache (MGet/SetJSON) and the per-document ingest lock
// (AcquireLock/Release).
//
//	client, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379}, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	lock, err := client.AcquireLock(ctx, "lock:ingest:42", time.Minute)
//	if errors.Is(err, redis.ErrLockNotAcquired) {
//		// someone else is ingesting document 42
//	}
//	defer lock.Release(ctx)
//
// Missing keys are reported as Nil rather than go-redis's own sentinel.
package redis
