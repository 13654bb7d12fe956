package controller

import (
	"context"
	"fmt"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/scheduler"
)

// Schedule builds the periodic schedule table, registered once at startup.
// The fulltext cleanup and optimize jobs run on disjoint days to avoid
// index-lock contention.
func (c Controller) Schedule() []scheduler.Job {
	return []scheduler.Job{
		{Name: "commit-pending", Spec: "@every 1h", Do: c.commitPendingJob},
		{Name: "update-remotes", Spec: "30 3 * * *", Do: c.updateRemotesJob},
		{Name: "repository-alerts", Spec: "@every 24h", Do: c.repositoryAlertsJob},
		{Name: "component-alerts", Spec: "@every 24h", Do: c.services.Engine.ComponentSweep},
		{Name: "suggestions-cleanup", Spec: "@every 24h", Do: c.services.Cleanup.SweepSuggestions},
		{Name: "cleanup-stale-repos", Spec: "@every 24h", Do: c.services.Reaper.Sweep},
		{Name: "cleanup-old-suggestions", Spec: "@every 24h", Do: c.services.Cleanup.SweepOldSuggestions},
		{Name: "cleanup-old-comments", Spec: "@every 24h", Do: c.services.Cleanup.SweepOldComments},
		{Name: "fulltext-cleanup", Spec: "30 2 * * 6", Do: c.services.Maintainer.Cleanup},
		{Name: "fulltext-optimize", Spec: "30 2 * * 0", Do: c.services.Maintainer.Optimize},
	}
}

func (c Controller) commitPendingJob(ctx context.Context) error {
	return c.services.CommitAge.Scan(ctx, 0, nil)
}

func (c Controller) repositoryAlertsJob(ctx context.Context) error {
	return c.services.Engine.RepositorySweep(ctx, c.cfg.AlertThreshold)
}

// updateRemotesJob enqueues a scheduled update for every component with a real
// upstream, honoring the global auto-update mode.
func (c Controller) updateRemotesJob(ctx context.Context) error {
	if c.cfg.AutoUpdate == model.AutoUpdateDisabled {
		return nil
	}
	list, err := c.services.Component.WithRemote(ctx)
	if err != nil {
		return fmt.Errorf("controller.updateRemotesJob: list: %w", err)
	}
	for _, cmp := range list {
		if cmp.AutoUpdate == model.AutoUpdateDisabled {
			continue
		}
		_, err = c.services.Task.Submit(ctx, model.Task{
			Kind:        model.TaskKindUpdate,
			ComponentID: cmp.ID,
			Args:        model.TaskArgs{Reason: "update-remotes", Auto: true},
		})
		if err != nil {
			return fmt.Errorf("controller.updateRemotesJob: submit: %w", err)
		}
	}
	return nil
}
