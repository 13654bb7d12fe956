package scheduler

import (
	"context"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/task"
	"github.com/rs/zerolog/log"
)

// CommitReason tags the commits produced by the periodic scan.
const CommitReason = "periodic-commit"

// NewCommitAge creates a new instance of the commit-age scanner.
func NewCommitAge(components component.Service, tasks task.Service) CommitAge {
	return CommitAge{components: components, tasks: tasks}
}

// CommitAge scans the components and enqueues a commit task for those whose
// pending changes are older than their threshold. Work is enqueued, never run
// inline, so the scan cannot block on repository locks.
type CommitAge struct {
	components component.Service
	tasks      task.Service
}

// Scan runs one pass. A positive hours value overrides the per-component
// commit-pending age; a non-empty unitIDs set restricts the scan to the
// components containing those units.
func (s CommitAge) Scan(ctx context.Context, hours int, unitIDs []uint64) error {
	var list []model.Component
	var err error
	if len(unitIDs) > 0 {
		list, err = s.components.FindByUnitIDs(ctx, unitIDs)
	} else {
		list, err = s.components.FindAll(ctx)
	}
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.scheduler.CommitAge.Scan: list"})
	}
	now := time.Now()
	for _, c := range list {
		if c.LastChangedAt == nil {
			continue
		}
		age := c.CommitPendingAge
		if hours > 0 {
			age = hours
		}
		if now.Sub(*c.LastChangedAt) < time.Duration(age)*time.Hour {
			continue
		}
		if !c.NeedsCommit {
			continue
		}
		log.Info().Uint64("component", c.ID).Str("path", c.Path()).Msg("committing pending changes")
		_, err = s.tasks.Submit(ctx, model.Task{
			Kind:        model.TaskKindCommit,
			ComponentID: c.ID,
			Args:        model.TaskArgs{Reason: CommitReason},
		})
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.scheduler.CommitAge.Scan: submit",
				Params: errors.Params{"component": c.ID},
			})
		}
	}
	return nil
}
