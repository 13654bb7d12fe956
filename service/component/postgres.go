package component

import (
	"context"
	"fmt"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const columns = `"id", "project_slug", "slug", "repo_url", "branch", "auto_update",
	"commit_pending_age", "push_on_commit", "has_remote", "needs_commit", "last_changed_at", "updated_at"`

const aliasedColumns = `c."id", c."project_slug", c."slug", c."repo_url", c."branch", c."auto_update",
	c."commit_pending_age", c."push_on_commit", c."has_remote", c."needs_commit", c."last_changed_at", c."updated_at"`

// NewPostgres creates a new instance of the component store.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Service {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the component store with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// FindAll returns all components.
func (p Postgres) FindAll(ctx context.Context) ([]model.Component, error) {
	q := fmt.Sprintf(`SELECT %s FROM "%s"."components" ORDER BY "project_slug", "slug"`, columns, p.schema)
	rows, err := p.conn.Query(ctx, q)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.component.postgres.FindAll: query"})
	}
	defer rows.Close()
	return p.collect(rows, "service.component.postgres.FindAll: scan")
}

// FindByID returns a component by its ID.
func (p Postgres) FindByID(ctx context.Context, id uint64) (model.Component, error) {
	q := fmt.Sprintf(`SELECT %s FROM "%s"."components" WHERE "id" = $1`, columns, p.schema)
	c, err := p.scanRow(p.conn.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return c, model.ErrNotFound
	}
	return c, errors.WrapContext(err, errors.Context{
		Path:   "service.component.postgres.FindByID: scan",
		Params: errors.Params{"component": id},
	})
}

// WithRemote returns the components that are backed by a real upstream.
func (p Postgres) WithRemote(ctx context.Context) ([]model.Component, error) {
	q := fmt.Sprintf(`SELECT %s FROM "%s"."components" WHERE "has_remote" = TRUE ORDER BY "id"`, columns, p.schema)
	rows, err := p.conn.Query(ctx, q)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.component.postgres.WithRemote: query"})
	}
	defer rows.Close()
	return p.collect(rows, "service.component.postgres.WithRemote: scan")
}

// FindByUnitIDs returns the components that contain any of the given units.
func (p Postgres) FindByUnitIDs(ctx context.Context, ids []uint64) ([]model.Component, error) {
	q := fmt.Sprintf(
		`SELECT DISTINCT %s FROM "%s"."components" c
		JOIN "%s"."units" u ON u."component_id" = c."id" WHERE u."id" = ANY($1)`,
		aliasedColumns, p.schema, p.schema,
	)
	args := make([]int64, len(ids))
	for i, id := range ids {
		args[i] = int64(id)
	}
	rows, err := p.conn.Query(ctx, q, args)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.component.postgres.FindByUnitIDs: query"})
	}
	defer rows.Close()
	return p.collect(rows, "service.component.postgres.FindByUnitIDs: scan")
}

// FindByProject returns the components of the given project.
func (p Postgres) FindByProject(ctx context.Context, projectSlug string) ([]model.Component, error) {
	q := fmt.Sprintf(`SELECT %s FROM "%s"."components" WHERE "project_slug" = $1 ORDER BY "slug"`, columns, p.schema)
	rows, err := p.conn.Query(ctx, q, projectSlug)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.component.postgres.FindByProject: query"})
	}
	defer rows.Close()
	return p.collect(rows, "service.component.postgres.FindByProject: scan")
}

// ExistsBySlugs reports whether a live component with a remote matches the slug pair.
func (p Postgres) ExistsBySlugs(ctx context.Context, projectSlug, slug string) (bool, error) {
	var exists bool
	q := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM "%s"."components"
		WHERE "project_slug" = $1 AND "slug" = $2 AND "has_remote" = TRUE)`,
		p.schema,
	)
	err := p.conn.QueryRow(ctx, q, projectSlug, slug).Scan(&exists)
	return exists, errors.WrapContext(err, errors.Context{
		Path:   "service.component.postgres.ExistsBySlugs: scan",
		Params: errors.Params{"project": projectSlug, "component": slug},
	})
}

// Add saves a new component.
func (p Postgres) Add(ctx context.Context, c model.Component) (model.Component, error) {
	q := fmt.Sprintf(
		`INSERT INTO "%s"."components"
		("project_slug", "slug", "repo_url", "branch", "auto_update", "commit_pending_age",
		"push_on_commit", "has_remote", "needs_commit", "last_changed_at", "updated_at")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING "id"`,
		p.schema,
	)
	err := p.conn.QueryRow(
		ctx, q,
		c.ProjectSlug, c.Slug, c.RepoURL, c.Branch, c.AutoUpdate, c.CommitPendingAge,
		c.PushOnCommit, c.HasRemote, c.NeedsCommit, c.LastChangedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return c, errors.WrapContext(err, errors.Context{Path: "service.component.postgres.Add: scan"})
}

// Update modifies a specific component.
func (p Postgres) Update(ctx context.Context, c model.Component) (model.Component, error) {
	q := fmt.Sprintf(
		`UPDATE "%s"."components" SET "repo_url" = $2, "branch" = $3, "auto_update" = $4,
		"commit_pending_age" = $5, "push_on_commit" = $6, "has_remote" = $7, "needs_commit" = $8,
		"last_changed_at" = $9, "updated_at" = $10 WHERE "id" = $1`,
		p.schema,
	)
	_, err := p.conn.Exec(
		ctx, q,
		c.ID, c.RepoURL, c.Branch, c.AutoUpdate, c.CommitPendingAge,
		c.PushOnCommit, c.HasRemote, c.NeedsCommit, c.LastChangedAt, c.UpdatedAt,
	)
	return c, errors.WrapContext(err, errors.Context{
		Path:   "service.component.postgres.Update: exec",
		Params: errors.Params{"component": c.ID},
	})
}

// Delete removes a specific component.
func (p Postgres) Delete(ctx context.Context, id uint64) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."components" WHERE "id" = $1`, p.schema)
	_, err := p.conn.Exec(ctx, q, id)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.component.postgres.Delete: exec",
		Params: errors.Params{"component": id},
	})
}

func (p Postgres) collect(rows pgx.Rows, path string) ([]model.Component, error) {
	res := make([]model.Component, 0)
	var c model.Component
	for rows.Next() {
		err := rows.Scan(
			&c.ID, &c.ProjectSlug, &c.Slug, &c.RepoURL, &c.Branch, &c.AutoUpdate,
			&c.CommitPendingAge, &c.PushOnCommit, &c.HasRemote, &c.NeedsCommit, &c.LastChangedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: path})
		}
		res = append(res, c)
	}
	return res, nil
}

func (p Postgres) scanRow(row pgx.Row) (model.Component, error) {
	var c model.Component
	err := row.Scan(
		&c.ID, &c.ProjectSlug, &c.Slug, &c.RepoURL, &c.Branch, &c.AutoUpdate,
		&c.CommitPendingAge, &c.PushOnCommit, &c.HasRemote, &c.NeedsCommit, &c.LastChangedAt, &c.UpdatedAt,
	)
	return c, err
}

