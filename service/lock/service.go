package lock

import (
	"context"
	"time"
)

// Service defines the per-component exclusive lock interface. Acquire blocks up
// to the given timeout and returns the release function on success; on expiry
// it returns an error matching model.ErrLockTimeout.
type Service interface {
	Acquire(ctx context.Context, key uint64, timeout time.Duration) (func(), error)
}
