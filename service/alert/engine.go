package alert

import (
	"context"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/parser"
	"github.com/beldeveloper/repo-keeper/service/vcs"
	"github.com/rs/zerolog/log"
)

// NewEngine creates a new instance of the alert engine.
func NewEngine(components component.Service, vcs vcs.Service, parser parser.Service, sink Service, cfg model.Config) Engine {
	return Engine{
		components: components,
		vcs:        vcs,
		parser:     parser,
		sink:       sink,
		threshold:  cfg.AlertThreshold,
	}
}

// Engine evaluates the component health checks and keeps the alert set in sync.
type Engine struct {
	components component.Service
	vcs        vcs.Service
	parser     parser.Service
	sink       Service
	threshold  int
}

// RepositorySweep re-evaluates the commit-count alerts for every component
// with a remote. A non-positive threshold falls back to the configured one.
func (e Engine) RepositorySweep(ctx context.Context, threshold int) error {
	if threshold < 1 {
		threshold = e.threshold
	}
	list, err := e.components.WithRemote(ctx)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.alert.Engine.RepositorySweep: list"})
	}
	for _, c := range list {
		err = e.CheckRepository(ctx, c, threshold)
		if err != nil {
			log.Error().Err(err).Uint64("component", c.ID).Msg("repository alert check failed")
		}
	}
	return nil
}

// CheckRepository applies the missing/outgoing commit thresholds to one component.
// Re-running it with unchanged counters leaves the alert set untouched.
func (e Engine) CheckRepository(ctx context.Context, c model.Component, threshold int) error {
	missing, err := e.vcs.CountMissing(ctx, c)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.alert.Engine.CheckRepository: missing",
			Params: errors.Params{"component": c.ID},
		})
	}
	err = e.apply(ctx, c.ID, model.AlertRepositoryOutdated, missing > threshold)
	if err != nil {
		return err
	}
	outgoing, err := e.vcs.CountOutgoing(ctx, c)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.alert.Engine.CheckRepository: outgoing",
			Params: errors.Params{"component": c.ID},
		})
	}
	return e.apply(ctx, c.ID, model.AlertRepositoryChanges, outgoing > threshold)
}

// ComponentSweep recomputes the full alert set of every managed component,
// remote or not.
func (e Engine) ComponentSweep(ctx context.Context) error {
	list, err := e.components.FindAll(ctx)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.alert.Engine.ComponentSweep: list"})
	}
	for _, c := range list {
		err = e.updateAlerts(ctx, c)
		if err != nil {
			log.Error().Err(err).Uint64("component", c.ID).Msg("component alert sweep failed")
		}
	}
	return nil
}

func (e Engine) updateAlerts(ctx context.Context, c model.Component) error {
	units, err := e.parser.Load(ctx, c)
	parseBroken := err != nil && errors.Is(err, model.ErrParse)
	if err != nil && !parseBroken {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.alert.Engine.updateAlerts: load",
			Params: errors.Params{"component": c.ID},
		})
	}
	err = e.apply(ctx, c.ID, model.AlertParseError, parseBroken)
	if err != nil {
		return err
	}
	err = e.apply(ctx, c.ID, model.AlertNoTranslationFiles, !parseBroken && len(units) == 0)
	if err != nil {
		return err
	}
	if !c.HasRemote {
		return nil
	}
	return e.CheckRepository(ctx, c, e.threshold)
}

func (e Engine) apply(ctx context.Context, componentID uint64, name string, active bool) error {
	var err error
	if active {
		err = e.sink.Add(ctx, componentID, name)
	} else {
		err = e.sink.Remove(ctx, componentID, name)
	}
	return errors.WrapContext(err, errors.Context{
		Path:   "service.alert.Engine.apply",
		Params: errors.Params{"component": componentID, "alert": name, "active": active},
	})
}
