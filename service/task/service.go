package task

import (
	"context"
	"time"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the task queue interface.
type Service interface {
	Submit(ctx context.Context, t model.Task) (model.Task, error)
	Claim(ctx context.Context, now time.Time) (model.Task, error)
	Requeue(ctx context.Context, t model.Task) error
	Fail(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, id uint64) error
	FindAll(ctx context.Context) ([]model.Task, error)
}
