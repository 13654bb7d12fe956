package reaper

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/beldeveloper/repo-keeper/service/component"
	appOs "github.com/beldeveloper/repo-keeper/service/os"
	"github.com/rs/zerolog/log"
)

// NewReaper creates a new instance of the stale checkout reaper.
func NewReaper(components component.Service, os appOs.Service, cfg model.Config) Service {
	return Reaper{
		components: components,
		os:         os,
		reposDir:   string(cfg.ReposDir),
		grace:      cfg.ReaperGrace,
	}
}

// Reaper removes checkout directories that no live component owns. Directories
// modified within the grace period are skipped to avoid racing an in-progress
// clone.
type Reaper struct {
	components component.Service
	os         appOs.Service
	reposDir   string
	grace      time.Duration
}

// Sweep scans the two-level <root>/<project>/<component> layout once.
func (r Reaper) Sweep(ctx context.Context) error {
	paths, err := filepath.Glob(filepath.Join(r.reposDir, "*", "*"))
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.reaper.Sweep: glob"})
	}
	cutoff := time.Now().Add(-r.grace)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		project := filepath.Base(filepath.Dir(path))
		slug := filepath.Base(path)
		exists, err := r.components.ExistsBySlugs(ctx, project, slug)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.reaper.Sweep: match",
				Params: errors.Params{"project": project, "component": slug},
			})
		}
		if exists {
			continue
		}
		err = r.os.RemoveDirForce(path)
		if err != nil {
			log.Error().Err(err).Str("dir", path).Msg("remove stale checkout")
			continue
		}
		log.Info().Str("project", project).Str("component", slug).Msg("stale checkout removed")
	}
	return nil
}
