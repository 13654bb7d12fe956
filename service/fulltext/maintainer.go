package fulltext

import (
	"context"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/service/unit"
	"github.com/rs/zerolog/log"
)

// NewMaintainer creates a new instance of the fulltext maintainer.
func NewMaintainer(index Index, units unit.Service) Maintainer {
	return Maintainer{index: index, units: units}
}

// Maintainer reconciles the fulltext partitions against the authoritative unit
// store and compacts them. Cleanup and Optimize are scheduled on disjoint days
// to avoid index-lock contention.
type Maintainer struct {
	index Index
	units unit.Service
}

// Cleanup removes the entries whose referenced unit no longer exists. It walks
// the source partition and one partition per known target language.
func (m Maintainer) Cleanup(ctx context.Context) error {
	languages, err := m.units.Languages(ctx)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.fulltext.Maintainer.Cleanup: languages"})
	}
	for _, lang := range append([]string{""}, languages...) {
		removed, err := m.cleanupPartition(ctx, m.index.Partition(lang))
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.fulltext.Maintainer.Cleanup",
				Params: errors.Params{"language": lang},
			})
		}
		if removed > 0 {
			log.Info().Str("language", lang).Int("removed", removed).Msg("cleaned stale fulltext entries")
		}
	}
	return nil
}

// Optimize compacts every partition, the source one first, then the languages
// that have at least one translation, in a predictable order.
func (m Maintainer) Optimize(ctx context.Context) error {
	languages, err := m.units.LanguagesWithTranslation(ctx)
	if err != nil {
		return errors.WrapContext(err, errors.Context{Path: "service.fulltext.Maintainer.Optimize: languages"})
	}
	for _, lang := range append([]string{""}, languages...) {
		log.Info().Str("language", lang).Msg("optimizing fulltext partition")
		err = m.index.Partition(lang).Optimize(ctx)
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.fulltext.Maintainer.Optimize",
				Params: errors.Params{"language": lang},
			})
		}
	}
	return nil
}

func (m Maintainer) cleanupPartition(ctx context.Context, part Partition) (int, error) {
	removed := 0
	cur := part.Entries(ctx)
	for cur.Next(ctx) {
		entry := cur.Entry()
		exists, err := m.units.Exists(ctx, entry.UnitID)
		if err != nil {
			return removed, err
		}
		if exists {
			continue
		}
		err = part.Remove(ctx, entry.UnitID)
		if err != nil {
			return removed, err
		}
		removed++
	}
	return removed, cur.Err()
}
