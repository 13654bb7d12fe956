package syncer

import "context"

// Service defines the sync pipeline interface. Every stage refreshes its view
// of the component before acting and holds the repository lock for its own
// target only; stages can be invoked independently or as a sequence.
type Service interface {
	Update(ctx context.Context, componentID uint64, auto bool) error
	Load(ctx context.Context, componentID uint64) error
	Commit(ctx context.Context, componentID uint64, reason, author string) error
	Push(ctx context.Context, componentID uint64) error
}
