package controller

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/scheduler"
	"github.com/beldeveloper/repo-keeper/service/task"
)

// Service defines the application controller interface.
type Service interface {
	AddComponent(ctx context.Context, f model.FormAddComponent) (model.Component, error)
	RemoveComponent(ctx context.Context, id uint64, actor string) (model.Task, error)
	Components(ctx context.Context) ([]model.Component, error)
	ComponentAlerts(ctx context.Context, id uint64) ([]model.Alert, error)
	SubmitTask(ctx context.Context, f model.FormSubmitTask) (model.Task, error)
	Tasks(ctx context.Context) ([]model.Task, error)

	Runners() task.Runners
	Schedule() []scheduler.Job
}
