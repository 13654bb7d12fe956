package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPostgres creates a new instance of the alert sink.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Service {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the alert sink with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// Add activates the named alert for the component if it is not active yet.
func (p Postgres) Add(ctx context.Context, componentID uint64, name string) error {
	q := fmt.Sprintf(
		`INSERT INTO "%s"."alerts" ("component_id", "name", "created_at")
		VALUES ($1, $2, $3) ON CONFLICT ("component_id", "name") DO NOTHING`,
		p.schema,
	)
	_, err := p.conn.Exec(ctx, q, componentID, name, time.Now())
	return errors.WrapContext(err, errors.Context{
		Path:   "service.alert.postgres.Add: exec",
		Params: errors.Params{"component": componentID, "alert": name},
	})
}

// Remove clears the named alert for the component if it is active.
func (p Postgres) Remove(ctx context.Context, componentID uint64, name string) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."alerts" WHERE "component_id" = $1 AND "name" = $2`, p.schema)
	_, err := p.conn.Exec(ctx, q, componentID, name)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.alert.postgres.Remove: exec",
		Params: errors.Params{"component": componentID, "alert": name},
	})
}

// FindByComponent returns the active alerts of the component.
func (p Postgres) FindByComponent(ctx context.Context, componentID uint64) ([]model.Alert, error) {
	q := fmt.Sprintf(
		`SELECT "component_id", "name", "created_at" FROM "%s"."alerts"
		WHERE "component_id" = $1 ORDER BY "name"`,
		p.schema,
	)
	rows, err := p.conn.Query(ctx, q, componentID)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.alert.postgres.FindByComponent: query"})
	}
	defer rows.Close()
	res := make([]model.Alert, 0)
	var a model.Alert
	for rows.Next() {
		err = rows.Scan(&a.ComponentID, &a.Name, &a.CreatedAt)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: "service.alert.postgres.FindByComponent: scan"})
		}
		res = append(res, a)
	}
	return res, nil
}

// DeleteByComponent clears every alert of the component.
func (p Postgres) DeleteByComponent(ctx context.Context, componentID uint64) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."alerts" WHERE "component_id" = $1`, p.schema)
	_, err := p.conn.Exec(ctx, q, componentID)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.alert.postgres.DeleteByComponent: exec",
		Params: errors.Params{"component": componentID},
	})
}
