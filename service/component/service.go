package component

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the component store interface.
type Service interface {
	FindAll(ctx context.Context) ([]model.Component, error)
	FindByID(ctx context.Context, id uint64) (model.Component, error)
	WithRemote(ctx context.Context) ([]model.Component, error)
	FindByUnitIDs(ctx context.Context, ids []uint64) ([]model.Component, error)
	FindByProject(ctx context.Context, projectSlug string) ([]model.Component, error)
	ExistsBySlugs(ctx context.Context, projectSlug, slug string) (bool, error)
	Add(ctx context.Context, c model.Component) (model.Component, error)
	Update(ctx context.Context, c model.Component) (model.Component, error)
	Delete(ctx context.Context, id uint64) error
}
