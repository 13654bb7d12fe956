package reaper

import "context"

// Service defines the stale checkout reaper interface.
type Service interface {
	Sweep(ctx context.Context) error
}
