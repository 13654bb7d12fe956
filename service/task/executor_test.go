package task

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	requeued []model.Task
	failed   []model.Task
	deleted  []uint64
}

func (q *fakeQueue) Submit(ctx context.Context, t model.Task) (model.Task, error) { return t, nil }

func (q *fakeQueue) Claim(ctx context.Context, now time.Time) (model.Task, error) {
	return model.Task{}, model.ErrNotFound
}

func (q *fakeQueue) Requeue(ctx context.Context, t model.Task) error {
	q.requeued = append(q.requeued, t)
	return nil
}

func (q *fakeQueue) Fail(ctx context.Context, t model.Task) error {
	q.failed = append(q.failed, t)
	return nil
}

func (q *fakeQueue) Delete(ctx context.Context, id uint64) error {
	q.deleted = append(q.deleted, id)
	return nil
}

func (q *fakeQueue) FindAll(ctx context.Context) ([]model.Task, error) { return nil, nil }

func newTestExecutor(queue Service, err error) Executor {
	runners := Runners{
		model.TaskKindCommit: func(ctx context.Context, t model.Task) error { return err },
	}
	return NewExecutor(queue, runners, model.Config{Workers: 1})
}

func TestExecutorHandleSuccess(t *testing.T) {
	queue := &fakeQueue{}
	e := newTestExecutor(queue, nil)
	e.Handle(context.Background(), model.Task{ID: 7, Kind: model.TaskKindCommit})
	assert.Equal(t, []uint64{7}, queue.deleted)
	assert.Empty(t, queue.requeued)
	assert.Empty(t, queue.failed)
}

func TestExecutorHandleTransient(t *testing.T) {
	queue := &fakeQueue{}
	e := newTestExecutor(queue, fmt.Errorf("lock: %w", model.ErrLockTimeout))
	before := time.Now()
	e.Handle(context.Background(), model.Task{ID: 7, Kind: model.TaskKindCommit, Attempts: 1})
	require.Len(t, queue.requeued, 1)
	got := queue.requeued[0]
	assert.Equal(t, 2, got.Attempts)
	assert.WithinDuration(t, before.Add(1200*time.Second), got.RunAfter, 5*time.Second)
	assert.Empty(t, queue.deleted)
	assert.Empty(t, queue.failed)
}

func TestExecutorHandleDomain(t *testing.T) {
	queue := &fakeQueue{}
	e := newTestExecutor(queue, fmt.Errorf("load: %w", model.ErrParse))
	e.Handle(context.Background(), model.Task{ID: 7, Kind: model.TaskKindCommit})
	assert.Equal(t, []uint64{7}, queue.deleted)
	assert.Empty(t, queue.failed)
}

func TestExecutorHandleNotFound(t *testing.T) {
	queue := &fakeQueue{}
	e := newTestExecutor(queue, fmt.Errorf("find: %w", model.ErrNotFound))
	e.Handle(context.Background(), model.Task{ID: 7, Kind: model.TaskKindCommit})
	assert.Equal(t, []uint64{7}, queue.deleted)
	assert.Empty(t, queue.failed)
}

func TestExecutorHandleFatal(t *testing.T) {
	queue := &fakeQueue{}
	e := newTestExecutor(queue, errors.New("broken"))
	e.Handle(context.Background(), model.Task{ID: 7, Kind: model.TaskKindCommit})
	require.Len(t, queue.failed, 1)
	assert.Equal(t, uint64(7), queue.failed[0].ID)
	assert.Empty(t, queue.deleted)
	assert.Empty(t, queue.requeued)
}

func TestExecutorHandleUnknownKind(t *testing.T) {
	queue := &fakeQueue{}
	e := newTestExecutor(queue, nil)
	e.Handle(context.Background(), model.Task{ID: 7, Kind: "mystery"})
	require.Len(t, queue.failed, 1)
	assert.Equal(t, uint64(7), queue.failed[0].ID)
}
