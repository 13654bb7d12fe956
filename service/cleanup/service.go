package cleanup

import "context"

// Service defines the review-data cleanup interface.
type Service interface {
	SweepSuggestions(ctx context.Context) error
	SweepOldSuggestions(ctx context.Context) error
	SweepOldComments(ctx context.Context) error
}
