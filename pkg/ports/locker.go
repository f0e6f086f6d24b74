package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker serializes access to a shared resource, typically an output directory.
type Locker interface {
	// Lock blocks until the lock for key is acquired or ctx is done.
	// The ttl bounds how long a crashed holder can keep the lock (implementation specific).
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
