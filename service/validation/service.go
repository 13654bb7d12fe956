package validation

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Service defines the validation service interface.
type Service interface {
	AddComponent(ctx context.Context, f model.FormAddComponent) (model.FormAddComponent, error)
	SubmitTask(ctx context.Context, f model.FormSubmitTask) (model.FormSubmitTask, error)
}
