package vcs

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the VCS driver interface.
type Service interface {
	Update(ctx context.Context, c model.Component) error
	Merge(ctx context.Context, c model.Component) error
	NeedsCommit(ctx context.Context, c model.Component) (bool, error)
	Commit(ctx context.Context, c model.Component, message, author string) error
	Push(ctx context.Context, c model.Component) error
	CountMissing(ctx context.Context, c model.Component) (int, error)
	CountOutgoing(ctx context.Context, c model.Component) (int, error)
}
