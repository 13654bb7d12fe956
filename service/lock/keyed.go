package lock

import (
	"context"
	"sync"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
)

// NewKeyed creates a new instance of the in-process keyed lock.
func NewKeyed() Service {
	return Keyed{
		mux:   &sync.Mutex{},
		slots: make(map[uint64]*slot),
	}
}

// Keyed implements the lock service with one in-process mutex per key.
// Lock state lives only in memory; a process restart releases everything.
type Keyed struct {
	mux   *sync.Mutex
	slots map[uint64]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// Acquire takes the exclusive lock for the key, waiting up to the timeout.
func (k Keyed) Acquire(ctx context.Context, key uint64, timeout time.Duration) (func(), error) {
	s := k.retain(key)
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case s.ch <- struct{}{}:
		return func() {
			<-s.ch
			k.release(key)
		}, nil
	case <-timer.C:
		k.release(key)
		return nil, errors.WrapContext(model.ErrLockTimeout, errors.Context{
			Path:   "service.lock.Keyed.Acquire",
			Params: errors.Params{"key": key, "timeout": timeout.String()},
		})
	case <-ctx.Done():
		k.release(key)
		return nil, errors.WrapContext(ctx.Err(), errors.Context{
			Path:   "service.lock.Keyed.Acquire: context",
			Params: errors.Params{"key": key},
		})
	}
}

func (k Keyed) retain(key uint64) *slot {
	k.mux.Lock()
	defer k.mux.Unlock()
	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.refs++
	return s
}

func (k Keyed) release(key uint64) {
	k.mux.Lock()
	defer k.mux.Unlock()
	s, ok := k.slots[key]
	if !ok {
		return
	}
	s.refs--
	if s.refs < 1 {
		delete(k.slots, key)
	}
}
