package unit

import (
	"context"
	"fmt"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPostgres creates a new instance of the unit store.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Service {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the unit store with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// Exists reports whether a unit with the given ID is still present.
func (p Postgres) Exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM "%s"."units" WHERE "id" = $1)`, p.schema)
	err := p.conn.QueryRow(ctx, q, id).Scan(&exists)
	return exists, errors.WrapContext(err, errors.Context{
		Path:   "service.unit.postgres.Exists: scan",
		Params: errors.Params{"unit": id},
	})
}

// Replace reconciles the stored units of the component with the freshly parsed
// set in one transaction and returns the set with its assigned IDs. A unit that
// survives a load keeps its ID, so suggestions, comments, and index entries
// stay attached; only the rows absent from the parsed set are deleted.
func (p Postgres) Replace(ctx context.Context, componentID uint64, units []model.Unit) ([]model.Unit, error) {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.unit.postgres.Replace: begin"})
	}
	defer tx.Rollback(ctx)
	existing, err := p.findByComponent(ctx, tx, componentID)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{
			Path:   "service.unit.postgres.Replace: existing",
			Params: errors.Params{"component": componentID},
		})
	}
	res, stale := reconcile(componentID, existing, units)
	insertQ := fmt.Sprintf(
		`INSERT INTO "%s"."units" ("component_id", "language", "id_hash", "source", "target", "translated")
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING "id"`,
		p.schema,
	)
	updateQ := fmt.Sprintf(
		`UPDATE "%s"."units" SET "source" = $2, "target" = $3, "translated" = $4 WHERE "id" = $1`,
		p.schema,
	)
	for i := range res {
		u := res[i]
		if u.ID == 0 {
			err = tx.QueryRow(ctx, insertQ, componentID, u.Language, u.IDHash, u.Source, u.Target, u.Translated).
				Scan(&res[i].ID)
		} else {
			_, err = tx.Exec(ctx, updateQ, u.ID, u.Source, u.Target, u.Translated)
		}
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{
				Path:   "service.unit.postgres.Replace: store",
				Params: errors.Params{"component": componentID, "idHash": u.IDHash},
			})
		}
	}
	if len(stale) > 0 {
		ids := make([]int64, len(stale))
		for i, id := range stale {
			ids[i] = int64(id)
		}
		q := fmt.Sprintf(`DELETE FROM "%s"."units" WHERE "id" = ANY($1)`, p.schema)
		_, err = tx.Exec(ctx, q, ids)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{
				Path:   "service.unit.postgres.Replace: prune",
				Params: errors.Params{"component": componentID},
			})
		}
	}
	err = tx.Commit(ctx)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{
			Path:   "service.unit.postgres.Replace: commit",
			Params: errors.Params{"component": componentID},
		})
	}
	return res, nil
}

func (p Postgres) findByComponent(ctx context.Context, tx pgx.Tx, componentID uint64) ([]model.Unit, error) {
	q := fmt.Sprintf(`SELECT "id", "language", "id_hash" FROM "%s"."units" WHERE "component_id" = $1`, p.schema)
	rows, err := tx.Query(ctx, q, componentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]model.Unit, 0)
	var u model.Unit
	for rows.Next() {
		err = rows.Scan(&u.ID, &u.Language, &u.IDHash)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, nil
}

// Languages returns every target language that has at least one unit.
func (p Postgres) Languages(ctx context.Context) ([]string, error) {
	q := fmt.Sprintf(
		`SELECT DISTINCT "language" FROM "%s"."units" WHERE "language" <> '' ORDER BY "language"`,
		p.schema,
	)
	return p.collectLanguages(ctx, q, "service.unit.postgres.Languages")
}

// LanguagesWithTranslation returns the languages that have at least one translated unit.
func (p Postgres) LanguagesWithTranslation(ctx context.Context) ([]string, error) {
	q := fmt.Sprintf(
		`SELECT DISTINCT "language" FROM "%s"."units"
		WHERE "language" <> '' AND "translated" = TRUE ORDER BY "language"`,
		p.schema,
	)
	return p.collectLanguages(ctx, q, "service.unit.postgres.LanguagesWithTranslation")
}

// CleanupSources deletes the source units of the component that no longer back
// any translated language.
func (p Postgres) CleanupSources(ctx context.Context, componentID uint64) (int64, error) {
	q := fmt.Sprintf(
		`DELETE FROM "%s"."units" WHERE "component_id" = $1 AND "language" = ''
		AND "id_hash" NOT IN (
			SELECT DISTINCT "id_hash" FROM "%s"."units" WHERE "component_id" = $1 AND "language" <> ''
		)`,
		p.schema, p.schema,
	)
	tag, err := p.conn.Exec(ctx, q, componentID)
	if err != nil {
		return 0, errors.WrapContext(err, errors.Context{
			Path:   "service.unit.postgres.CleanupSources: exec",
			Params: errors.Params{"component": componentID},
		})
	}
	return tag.RowsAffected(), nil
}

// DeleteByComponent removes every unit of the component.
func (p Postgres) DeleteByComponent(ctx context.Context, componentID uint64) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."units" WHERE "component_id" = $1`, p.schema)
	_, err := p.conn.Exec(ctx, q, componentID)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.unit.postgres.DeleteByComponent: exec",
		Params: errors.Params{"component": componentID},
	})
}

func (p Postgres) collectLanguages(ctx context.Context, q, path string) ([]string, error) {
	rows, err := p.conn.Query(ctx, q)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: path + ": query"})
	}
	defer rows.Close()
	res := make([]string, 0)
	var lang string
	for rows.Next() {
		err = rows.Scan(&lang)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: path + ": scan"})
		}
		res = append(res, lang)
	}
	return res, nil
}
