package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
)

// sweepPageSize bounds how many suggestions one sweep page fetches.
const sweepPageSize = 500

// NewPostgres creates a new instance of the review-data cleanup service.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema, cfg model.Config) Service {
	return Postgres{
		conn:                conn,
		schema:              string(schema),
		suggestionRetention: cfg.SuggestionRetentionDays,
		commentRetention:    cfg.CommentRetentionDays,
	}
}

// Postgres implements the review-data cleanup with the Postgres storage.
type Postgres struct {
	conn                *pgxpool.Pool
	schema              string
	suggestionRetention int
	commentRetention    int
}

// SweepSuggestions removes the suggestions that duplicate the accepted
// translation of their unit or another suggestion on the same unit. The sweep
// streams page by page and deletes each candidate in its own statement, so a
// mid-sweep failure loses only partial progress.
func (p Postgres) SweepSuggestions(ctx context.Context) error {
	var last uint64
	for {
		batch, err := p.suggestionPage(ctx, last)
		if err != nil {
			return errors.WrapContext(err, errors.Context{Path: "service.cleanup.postgres.SweepSuggestions: page"})
		}
		if len(batch) == 0 {
			return nil
		}
		for _, s := range batch {
			last = s.ID
			stale, err := p.suggestionIsStale(ctx, s)
			if err != nil {
				return errors.WrapContext(err, errors.Context{
					Path:   "service.cleanup.postgres.SweepSuggestions: check",
					Params: errors.Params{"suggestion": s.ID},
				})
			}
			if !stale {
				continue
			}
			err = p.deleteRow(ctx, "suggestions", s.ID)
			if err != nil {
				return errors.WrapContext(err, errors.Context{
					Path:   "service.cleanup.postgres.SweepSuggestions: delete",
					Params: errors.Params{"suggestion": s.ID},
				})
			}
		}
	}
}

// SweepOldSuggestions deletes the suggestions older than the configured
// retention; zero retention disables the sweep.
func (p Postgres) SweepOldSuggestions(ctx context.Context) error {
	return p.sweepOld(ctx, "suggestions", p.suggestionRetention)
}

// SweepOldComments deletes the comments older than the configured retention;
// zero retention disables the sweep.
func (p Postgres) SweepOldComments(ctx context.Context) error {
	return p.sweepOld(ctx, "comments", p.commentRetention)
}

func (p Postgres) sweepOld(ctx context.Context, table string, retentionDays int) error {
	if retentionDays < 1 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	q := fmt.Sprintf(`DELETE FROM "%s"."%s" WHERE "created_at" < $1`, p.schema, table)
	tag, err := p.conn.Exec(ctx, q, cutoff)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.cleanup.postgres.sweepOld: exec",
			Params: errors.Params{"table": table},
		})
	}
	if tag.RowsAffected() > 0 {
		log.Info().Str("table", table).Int64("removed", tag.RowsAffected()).Msg("aged review data removed")
	}
	return nil
}

func (p Postgres) suggestionPage(ctx context.Context, after uint64) ([]model.Suggestion, error) {
	q := fmt.Sprintf(
		`SELECT "id", "unit_id", "target", "created_at" FROM "%s"."suggestions"
		WHERE "id" > $1 ORDER BY "id" LIMIT $2`,
		p.schema,
	)
	rows, err := p.conn.Query(ctx, q, after, sweepPageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]model.Suggestion, 0)
	var s model.Suggestion
	for rows.Next() {
		err = rows.Scan(&s.ID, &s.UnitID, &s.Target, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func (p Postgres) suggestionIsStale(ctx context.Context, s model.Suggestion) (bool, error) {
	var target string
	var translated bool
	q := fmt.Sprintf(`SELECT "target", "translated" FROM "%s"."units" WHERE "id" = $1`, p.schema)
	err := p.conn.QueryRow(ctx, q, s.UnitID).Scan(&target, &translated)
	if err == pgx.ErrNoRows {
		// The unit is gone; the suggestion has nothing to attach to.
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if translated && target == s.Target {
		return true, nil
	}
	q = fmt.Sprintf(`SELECT "target" FROM "%s"."suggestions" WHERE "unit_id" = $1 AND "id" < $2`, p.schema)
	rows, err := p.conn.Query(ctx, q, s.UnitID, s.ID)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	var other string
	for rows.Next() {
		err = rows.Scan(&other)
		if err != nil {
			return false, err
		}
		// Compared here instead of SQL so the match stays case-sensitive
		// regardless of column collation.
		if other == s.Target {
			return true, nil
		}
	}
	return false, nil
}

func (p Postgres) deleteRow(ctx context.Context, table string, id uint64) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."%s" WHERE "id" = $1`, p.schema, table)
	_, err := p.conn.Exec(ctx, q, id)
	return err
}
