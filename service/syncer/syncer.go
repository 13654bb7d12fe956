package syncer

import (
	"context"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/alert"
	"github.com/beldeveloper/repo-keeper/service/audit"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/fulltext"
	"github.com/beldeveloper/repo-keeper/service/lock"
	"github.com/beldeveloper/repo-keeper/service/parser"
	"github.com/beldeveloper/repo-keeper/service/unit"
	"github.com/beldeveloper/repo-keeper/service/vcs"
	"github.com/rs/zerolog/log"
)

// NewSyncer creates a new instance of the sync pipeline.
func NewSyncer(
	components component.Service,
	locks lock.Service,
	vcs vcs.Service,
	parser parser.Service,
	units unit.Service,
	index fulltext.Index,
	alerts alert.Service,
	audit audit.Service,
	cfg model.Config,
) Service {
	return Syncer{
		components:  components,
		locks:       locks,
		vcs:         vcs,
		parser:      parser,
		units:       units,
		index:       index,
		alerts:      alerts,
		audit:       audit,
		lockTimeout: cfg.LockTimeout,
		autoUpdate:  cfg.AutoUpdate,
	}
}

// Syncer implements the update → load → commit → push pipeline for one component.
type Syncer struct {
	components  component.Service
	locks       lock.Service
	vcs         vcs.Service
	parser      parser.Service
	units       unit.Service
	index       fulltext.Index
	alerts      alert.Service
	audit       audit.Service
	lockTimeout time.Duration
	autoUpdate  string
}

// Update fetches the remote and merges it depending on the update mode.
// Scheduled runs (auto=true) honor the component and global auto-update
// settings; manual runs always merge.
func (s Syncer) Update(ctx context.Context, componentID uint64, auto bool) error {
	c, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Update: find",
			Params: errors.Params{"component": componentID},
		})
	}
	if auto && c.AutoUpdate == model.AutoUpdateDisabled {
		return nil
	}
	release, err := s.locks.Acquire(ctx, c.ID, s.lockTimeout)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Update: lock",
			Params: errors.Params{"component": c.ID},
		})
	}
	defer release()
	err = s.vcs.Update(ctx, c)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Update: fetch",
			Params: errors.Params{"component": c.ID},
		})
	}
	if !auto || c.AutoUpdate == model.AutoUpdateFull || s.autoUpdate == model.AutoUpdateFull {
		err = s.vcs.Merge(ctx, c)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.syncer.Update: merge",
				Params: errors.Params{"component": c.ID},
			})
		}
		err = s.load(ctx, c)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.syncer.Update: load",
				Params: errors.Params{"component": c.ID},
			})
		}
	}
	return nil
}

// Load parses the translation files into units and refreshes the derived state.
// A parse failure becomes a persistent alert instead of failing the pipeline.
func (s Syncer) Load(ctx context.Context, componentID uint64) error {
	c, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Load: find",
			Params: errors.Params{"component": componentID},
		})
	}
	release, err := s.locks.Acquire(ctx, c.ID, s.lockTimeout)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Load: lock",
			Params: errors.Params{"component": c.ID},
		})
	}
	defer release()
	return s.load(ctx, c)
}

// Commit flushes the pending local changes with a message derived from the
// triggering reason. Nothing pending is a no-op.
func (s Syncer) Commit(ctx context.Context, componentID uint64, reason, author string) error {
	c, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Commit: find",
			Params: errors.Params{"component": componentID},
		})
	}
	release, err := s.locks.Acquire(ctx, c.ID, s.lockTimeout)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Commit: lock",
			Params: errors.Params{"component": c.ID},
		})
	}
	defer release()
	needs, err := s.vcs.NeedsCommit(ctx, c)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Commit: status",
			Params: errors.Params{"component": c.ID},
		})
	}
	if !needs {
		return s.markCommitted(ctx, c)
	}
	if reason == "" {
		reason = "manual-commit"
	}
	err = s.vcs.Commit(ctx, c, "translation update: "+reason, author)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Commit: commit",
			Params: errors.Params{"component": c.ID, "reason": reason},
		})
	}
	s.record(ctx, "commit", c.Path(), author)
	err = s.markCommitted(ctx, c)
	if err != nil {
		return err
	}
	if c.PushOnCommit && c.HasRemote {
		return s.push(ctx, c)
	}
	return nil
}

// Push publishes the local commits to the remote. A component without a remote
// raises a persistent alert and terminates as a domain failure.
func (s Syncer) Push(ctx context.Context, componentID uint64) error {
	c, err := s.components.FindByID(ctx, componentID)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Push: find",
			Params: errors.Params{"component": componentID},
		})
	}
	release, err := s.locks.Acquire(ctx, c.ID, s.lockTimeout)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.Push: lock",
			Params: errors.Params{"component": c.ID},
		})
	}
	defer release()
	return s.push(ctx, c)
}

func (s Syncer) push(ctx context.Context, c model.Component) error {
	if !c.HasRemote {
		alertErr := s.alerts.Add(ctx, c.ID, model.AlertPushFailure)
		if alertErr != nil {
			log.Error().Err(alertErr).Uint64("component", c.ID).Msg("record push alert")
		}
		return errors.WrapContext(model.ErrNoRemote, errors.Context{
			Path:   "service.syncer.push",
			Params: errors.Params{"component": c.ID},
		})
	}
	err := s.vcs.Push(ctx, c)
	if err != nil {
		alertErr := s.alerts.Add(ctx, c.ID, model.AlertPushFailure)
		if alertErr != nil {
			log.Error().Err(alertErr).Uint64("component", c.ID).Msg("record push alert")
		}
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.push",
			Params: errors.Params{"component": c.ID},
		})
	}
	err = s.alerts.Remove(ctx, c.ID, model.AlertPushFailure)
	if err != nil {
		log.Error().Err(err).Uint64("component", c.ID).Msg("clear push alert")
	}
	s.record(ctx, "push", c.Path(), "")
	return nil
}

func (s Syncer) load(ctx context.Context, c model.Component) error {
	parsed, err := s.parser.Load(ctx, c)
	if err != nil {
		if errors.Is(err, model.ErrParse) {
			alertErr := s.alerts.Add(ctx, c.ID, model.AlertParseError)
			if alertErr != nil {
				log.Error().Err(alertErr).Uint64("component", c.ID).Msg("record parse alert")
			}
		}
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.load: parse",
			Params: errors.Params{"component": c.ID},
		})
	}
	err = s.alerts.Remove(ctx, c.ID, model.AlertParseError)
	if err != nil {
		log.Error().Err(err).Uint64("component", c.ID).Msg("clear parse alert")
	}
	stored, err := s.units.Replace(ctx, c.ID, parsed)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.load: replace",
			Params: errors.Params{"component": c.ID},
		})
	}
	for _, u := range stored {
		err = s.index.Store(ctx, u)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.syncer.load: index",
				Params: errors.Params{"component": c.ID, "unit": u.ID},
			})
		}
	}
	needs, err := s.vcs.NeedsCommit(ctx, c)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.syncer.load: status",
			Params: errors.Params{"component": c.ID},
		})
	}
	if needs && !c.NeedsCommit {
		now := time.Now()
		c.LastChangedAt = &now
	}
	c.NeedsCommit = needs
	c.UpdatedAt = time.Now()
	_, err = s.components.Update(ctx, c)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.syncer.load: update",
		Params: errors.Params{"component": c.ID},
	})
}

func (s Syncer) markCommitted(ctx context.Context, c model.Component) error {
	if !c.NeedsCommit {
		return nil
	}
	c.NeedsCommit = false
	c.UpdatedAt = time.Now()
	_, err := s.components.Update(ctx, c)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.syncer.markCommitted",
		Params: errors.Params{"component": c.ID},
	})
}

func (s Syncer) record(ctx context.Context, action, target, actor string) {
	err := s.audit.Record(ctx, action, target, actor)
	if err != nil {
		log.Error().Err(err).Str("action", action).Str("target", target).Msg("audit record")
	}
}
