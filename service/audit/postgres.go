package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPostgres creates a new instance of the audit log.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Service {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the audit log with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// Record appends one action entry.
func (p Postgres) Record(ctx context.Context, action, target, actor string) error {
	q := fmt.Sprintf(
		`INSERT INTO "%s"."audit_log" ("action", "target", "actor", "created_at") VALUES ($1, $2, $3, $4)`,
		p.schema,
	)
	_, err := p.conn.Exec(ctx, q, action, target, actor, time.Now())
	return errors.WrapContext(err, errors.Context{
		Path:   "service.audit.postgres.Record: exec",
		Params: errors.Params{"action": action, "target": target},
	})
}
