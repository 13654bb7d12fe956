package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service"
	"github.com/rs/zerolog/log"
)

// NewController creates a new instance of the application controller.
func NewController(services service.Container, cfg model.Config) Controller {
	return Controller{services: services, cfg: cfg}
}

// Controller implements the application controller.
type Controller struct {
	services service.Container
	cfg      model.Config
}

// AddComponent registers a new component and enqueues its initial sync.
func (c Controller) AddComponent(ctx context.Context, f model.FormAddComponent) (model.Component, error) {
	f, err := c.services.Validation.AddComponent(ctx, f)
	if err != nil {
		return model.Component{}, fmt.Errorf("controller.AddComponent: validation: %w", err)
	}
	cmp, err := c.services.Component.Add(ctx, model.Component{
		ProjectSlug:      f.ProjectSlug,
		Slug:             f.Slug,
		RepoURL:          f.RepoURL,
		Branch:           f.Branch,
		AutoUpdate:       f.AutoUpdate,
		CommitPendingAge: f.CommitPendingAge,
		PushOnCommit:     f.PushOnCommit,
		HasRemote:        f.HasRemote,
		UpdatedAt:        time.Now(),
	})
	if err != nil {
		return cmp, fmt.Errorf("controller.AddComponent: add: %w", err)
	}
	_, err = c.services.Task.Submit(ctx, model.Task{
		Kind:        model.TaskKindAfterSave,
		ComponentID: cmp.ID,
		Args:        model.TaskArgs{Reason: "component-added", SkipPush: true},
	})
	if err != nil {
		return cmp, fmt.Errorf("controller.AddComponent: enqueue sync: %w", err)
	}
	log.Info().Uint64("component", cmp.ID).Str("path", cmp.Path()).Msg("component registered")
	return cmp, nil
}

// RemoveComponent enqueues the removal of a component.
func (c Controller) RemoveComponent(ctx context.Context, id uint64, actor string) (model.Task, error) {
	_, err := c.services.Component.FindByID(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("controller.RemoveComponent: find: %w", err)
	}
	t, err := c.services.Task.Submit(ctx, model.Task{
		Kind:        model.TaskKindComponentRemoval,
		ComponentID: id,
		Args:        model.TaskArgs{Actor: actor},
	})
	if err != nil {
		return t, fmt.Errorf("controller.RemoveComponent: submit: %w", err)
	}
	log.Info().Uint64("component", id).Str("actor", actor).Msg("component removal requested")
	return t, nil
}

// Components returns the list of components.
func (c Controller) Components(ctx context.Context) ([]model.Component, error) {
	return c.services.Component.FindAll(ctx)
}

// ComponentAlerts returns the active alerts of a component.
func (c Controller) ComponentAlerts(ctx context.Context, id uint64) ([]model.Alert, error) {
	_, err := c.services.Component.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("controller.ComponentAlerts: find: %w", err)
	}
	return c.services.Alert.FindByComponent(ctx, id)
}

// SubmitTask validates and enqueues a task submitted through the API.
func (c Controller) SubmitTask(ctx context.Context, f model.FormSubmitTask) (model.Task, error) {
	f, err := c.services.Validation.SubmitTask(ctx, f)
	if err != nil {
		return model.Task{}, fmt.Errorf("controller.SubmitTask: validation: %w", err)
	}
	t, err := c.services.Task.Submit(ctx, model.Task{
		Kind:        f.Kind,
		ComponentID: f.ComponentID,
		Args:        f.Args,
	})
	if err != nil {
		return t, fmt.Errorf("controller.SubmitTask: submit: %w", err)
	}
	log.Info().Uint64("task", t.ID).Str("kind", t.Kind).Msg("task submitted")
	return t, nil
}

// Tasks returns the list of tasks.
func (c Controller) Tasks(ctx context.Context) ([]model.Task, error) {
	return c.services.Task.FindAll(ctx)
}
