package alert

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the alert sink interface. Add and Remove are idempotent:
// adding a present alert or removing an absent one is a no-op.
type Service interface {
	Add(ctx context.Context, componentID uint64, name string) error
	Remove(ctx context.Context, componentID uint64, name string) error
	FindByComponent(ctx context.Context, componentID uint64) ([]model.Alert, error)
	DeleteByComponent(ctx context.Context, componentID uint64) error
}
