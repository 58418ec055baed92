package contracts

import (
	"context"
	"time"
)

// LockerService provides short-lived distributed locks. TryLock returns the
// token required to release the lock; only the holder of the token may
// unlock.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, token string) error
}
