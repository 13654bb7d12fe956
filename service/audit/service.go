package audit

import "context"

// Service defines the append-only audit log interface.
type Service interface {
	Record(ctx context.Context, action, target, actor string) error
}
