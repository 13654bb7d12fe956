package unit

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the authoritative unit store interface. Replace keeps the
// IDs of the units that survive a reload so dependent records stay attached.
type Service interface {
	Exists(ctx context.Context, id uint64) (bool, error)
	Replace(ctx context.Context, componentID uint64, units []model.Unit) ([]model.Unit, error)
	Languages(ctx context.Context) ([]string, error)
	LanguagesWithTranslation(ctx context.Context) ([]string, error)
	CleanupSources(ctx context.Context, componentID uint64) (int64, error)
	DeleteByComponent(ctx context.Context, componentID uint64) error
}
