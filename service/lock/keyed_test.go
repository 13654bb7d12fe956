package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedAcquireRelease(t *testing.T) {
	l := NewKeyed()
	ctx := context.Background()

	release, err := l.Acquire(ctx, 1, time.Second)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, 1, 20*time.Millisecond)
	require.ErrorIs(t, err, model.ErrLockTimeout)

	release()
	release, err = l.Acquire(ctx, 1, time.Second)
	require.NoError(t, err)
	release()
}

func TestKeyedIndependentKeys(t *testing.T) {
	l := NewKeyed()
	ctx := context.Background()

	releaseA, err := l.Acquire(ctx, 1, time.Second)
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := l.Acquire(ctx, 2, 20*time.Millisecond)
	require.NoError(t, err, "a held lock must not block another key")
	releaseB()
}

func TestKeyedContextCanceled(t *testing.T) {
	l := NewKeyed()
	release, err := l.Acquire(context.Background(), 1, time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Acquire(ctx, 1, time.Minute)
	require.Error(t, err)
}

func TestKeyedMutualExclusion(t *testing.T) {
	l := NewKeyed()
	ctx := context.Background()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, 42, 5*time.Second)
			if err != nil {
				return
			}
			defer release()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, counter)
}
