package controller

import (
	"context"
	"fmt"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/task"
	"github.com/rs/zerolog/log"
)

// Runners maps every task kind to its runner.
func (c Controller) Runners() task.Runners {
	return task.Runners{
		model.TaskKindUpdate: func(ctx context.Context, t model.Task) error {
			return c.services.Syncer.Update(ctx, t.ComponentID, t.Args.Auto)
		},
		model.TaskKindLoad: func(ctx context.Context, t model.Task) error {
			return c.services.Syncer.Load(ctx, t.ComponentID)
		},
		model.TaskKindCommit: func(ctx context.Context, t model.Task) error {
			return c.services.Syncer.Commit(ctx, t.ComponentID, t.Args.Reason, t.Args.Author)
		},
		model.TaskKindPush: func(ctx context.Context, t model.Task) error {
			return c.services.Syncer.Push(ctx, t.ComponentID)
		},
		model.TaskKindCommitPending: func(ctx context.Context, t model.Task) error {
			return c.services.CommitAge.Scan(ctx, t.Args.Hours, nil)
		},
		model.TaskKindRepositoryAlerts: func(ctx context.Context, t model.Task) error {
			return c.services.Engine.RepositorySweep(ctx, t.Args.Threshold)
		},
		model.TaskKindAfterSave:        c.runAfterSave,
		model.TaskKindComponentRemoval: c.runComponentRemoval,
		model.TaskKindProjectRemoval:   c.runProjectRemoval,
		model.TaskKindCleanupProject:   c.runCleanupProject,
	}
}

// runAfterSave re-syncs a component after its settings changed. A component
// deleted in the meantime terminates the task silently.
func (c Controller) runAfterSave(ctx context.Context, t model.Task) error {
	err := c.services.Syncer.Update(ctx, t.ComponentID, false)
	if err != nil {
		return fmt.Errorf("controller.runAfterSave: update: %w", err)
	}
	err = c.services.Syncer.Load(ctx, t.ComponentID)
	if err != nil {
		return fmt.Errorf("controller.runAfterSave: load: %w", err)
	}
	if t.Args.SkipPush {
		return nil
	}
	cmp, err := c.services.Component.FindByID(ctx, t.ComponentID)
	if err != nil {
		return fmt.Errorf("controller.runAfterSave: find: %w", err)
	}
	if !cmp.HasRemote {
		return nil
	}
	err = c.services.Syncer.Push(ctx, t.ComponentID)
	if err != nil {
		return fmt.Errorf("controller.runAfterSave: push: %w", err)
	}
	return nil
}

func (c Controller) runComponentRemoval(ctx context.Context, t model.Task) error {
	cmp, err := c.services.Component.FindByID(ctx, t.ComponentID)
	if err != nil {
		return fmt.Errorf("controller.runComponentRemoval: find: %w", err)
	}
	err = c.removeComponent(ctx, cmp.ID)
	if err != nil {
		return fmt.Errorf("controller.runComponentRemoval: remove: %w", err)
	}
	c.record(ctx, "component-removal", cmp.Path(), t.Args.Actor)
	return nil
}

func (c Controller) runProjectRemoval(ctx context.Context, t model.Task) error {
	list, err := c.services.Component.FindByProject(ctx, t.Args.Project)
	if err != nil {
		return fmt.Errorf("controller.runProjectRemoval: list: %w", err)
	}
	for _, cmp := range list {
		err = c.removeComponent(ctx, cmp.ID)
		if err != nil {
			return fmt.Errorf("controller.runProjectRemoval: remove: %w", err)
		}
	}
	c.record(ctx, "project-removal", t.Args.Project, t.Args.Actor)
	return nil
}

func (c Controller) runCleanupProject(ctx context.Context, t model.Task) error {
	list, err := c.services.Component.FindByProject(ctx, t.Args.Project)
	if err != nil {
		return fmt.Errorf("controller.runCleanupProject: list: %w", err)
	}
	for _, cmp := range list {
		removed, err := c.services.Unit.CleanupSources(ctx, cmp.ID)
		if err != nil {
			return fmt.Errorf("controller.runCleanupProject: cleanup: %w", err)
		}
		if removed > 0 {
			log.Info().Uint64("component", cmp.ID).Int64("removed", removed).Msg("stale source units removed")
		}
	}
	return nil
}

func (c Controller) removeComponent(ctx context.Context, id uint64) error {
	err := c.services.Unit.DeleteByComponent(ctx, id)
	if err != nil {
		return err
	}
	err = c.services.Alert.DeleteByComponent(ctx, id)
	if err != nil {
		return err
	}
	return c.services.Component.Delete(ctx, id)
}

func (c Controller) record(ctx context.Context, action, target, actor string) {
	err := c.services.Audit.Record(ctx, action, target, actor)
	if err != nil {
		log.Error().Err(err).Str("action", action).Str("target", target).Msg("audit record")
	}
}
