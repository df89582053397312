package redis

import "errors"

var (
	// Nil is returned when a key does not exist.
	Nil = errors.New("redis: nil")

	// ErrLockNotAcquired is returned by AcquireLock when another holder owns the key.
	ErrLockNotAcquired = errors.New("redis: lock not acquired")

	// ErrLockNotHeld is returned by Release when the lock expired or changed owner.
	ErrLockNotHeld = errors.New("redis: lock not held")
)

// IsNilError reports whether err means the key was missing.
func IsNilError(err error) bool {
	return errors.Is(err, Nil)
}
