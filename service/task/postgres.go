package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPostgres creates a new instance of the task queue.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Service {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the task queue with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// Submit enqueues a new task.
func (p Postgres) Submit(ctx context.Context, t model.Task) (model.Task, error) {
	args, err := json.Marshal(t.Args)
	if err != nil {
		return t, errors.WrapContext(err, errors.Context{Path: "service.task.postgres.Submit: marshal"})
	}
	t.Status = model.TaskStatusQueued
	now := time.Now()
	if t.RunAfter.IsZero() {
		t.RunAfter = now
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	q := fmt.Sprintf(
		`INSERT INTO "%s"."tasks" ("kind", "component_id", "args", "status", "attempts", "run_after", "created_at", "updated_at")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING "id"`,
		p.schema,
	)
	err = p.conn.QueryRow(ctx, q, t.Kind, t.ComponentID, args, t.Status, t.Attempts, t.RunAfter, t.CreatedAt, t.UpdatedAt).
		Scan(&t.ID)
	return t, errors.WrapContext(err, errors.Context{
		Path:   "service.task.postgres.Submit: scan",
		Params: errors.Params{"kind": t.Kind, "component": t.ComponentID},
	})
}

// Claim atomically picks the oldest due queued task and marks it running.
// Returns model.ErrNotFound when nothing is due.
func (p Postgres) Claim(ctx context.Context, now time.Time) (model.Task, error) {
	var t model.Task
	var args []byte
	q := fmt.Sprintf(
		`UPDATE "%s"."tasks" SET "status" = $1, "updated_at" = $2 WHERE "id" = (
			SELECT "id" FROM "%s"."tasks" WHERE "status" = $3 AND "run_after" <= $2
			ORDER BY "run_after" LIMIT 1 FOR UPDATE SKIP LOCKED
		) RETURNING "id", "kind", "component_id", "args", "status", "attempts", "run_after", "created_at", "updated_at"`,
		p.schema, p.schema,
	)
	err := p.conn.QueryRow(ctx, q, model.TaskStatusRunning, now, model.TaskStatusQueued).
		Scan(&t.ID, &t.Kind, &t.ComponentID, &args, &t.Status, &t.Attempts, &t.RunAfter, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return t, model.ErrNotFound
	}
	if err != nil {
		return t, errors.WrapContext(err, errors.Context{Path: "service.task.postgres.Claim: scan"})
	}
	err = json.Unmarshal(args, &t.Args)
	return t, errors.WrapContext(err, errors.Context{
		Path:   "service.task.postgres.Claim: unmarshal",
		Params: errors.Params{"task": t.ID},
	})
}

// Requeue puts a task back into the queue for a later attempt.
func (p Postgres) Requeue(ctx context.Context, t model.Task) error {
	q := fmt.Sprintf(
		`UPDATE "%s"."tasks" SET "status" = $2, "attempts" = $3, "run_after" = $4, "updated_at" = $5 WHERE "id" = $1`,
		p.schema,
	)
	_, err := p.conn.Exec(ctx, q, t.ID, model.TaskStatusQueued, t.Attempts, t.RunAfter, time.Now())
	return errors.WrapContext(err, errors.Context{
		Path:   "service.task.postgres.Requeue: exec",
		Params: errors.Params{"task": t.ID, "attempts": t.Attempts},
	})
}

// Fail marks a task as terminally failed; the row is kept as the reported error record.
func (p Postgres) Fail(ctx context.Context, t model.Task) error {
	q := fmt.Sprintf(`UPDATE "%s"."tasks" SET "status" = $2, "updated_at" = $3 WHERE "id" = $1`, p.schema)
	_, err := p.conn.Exec(ctx, q, t.ID, model.TaskStatusFailed, time.Now())
	return errors.WrapContext(err, errors.Context{
		Path:   "service.task.postgres.Fail: exec",
		Params: errors.Params{"task": t.ID},
	})
}

// Delete destroys a task that reached a successful terminal state.
func (p Postgres) Delete(ctx context.Context, id uint64) error {
	q := fmt.Sprintf(`DELETE FROM "%s"."tasks" WHERE "id" = $1`, p.schema)
	_, err := p.conn.Exec(ctx, q, id)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.task.postgres.Delete: exec",
		Params: errors.Params{"task": id},
	})
}

// FindAll returns all queued, running, and failed tasks.
func (p Postgres) FindAll(ctx context.Context) ([]model.Task, error) {
	q := fmt.Sprintf(
		`SELECT "id", "kind", "component_id", "args", "status", "attempts", "run_after", "created_at", "updated_at"
		FROM "%s"."tasks" ORDER BY "run_after"`,
		p.schema,
	)
	rows, err := p.conn.Query(ctx, q)
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{Path: "service.task.postgres.FindAll: query"})
	}
	defer rows.Close()
	res := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		var args []byte
		err = rows.Scan(&t.ID, &t.Kind, &t.ComponentID, &args, &t.Status, &t.Attempts, &t.RunAfter, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{Path: "service.task.postgres.FindAll: scan"})
		}
		err = json.Unmarshal(args, &t.Args)
		if err != nil {
			return nil, errors.WrapContext(err, errors.Context{
				Path:   "service.task.postgres.FindAll: unmarshal",
				Params: errors.Params{"task": t.ID},
			})
		}
		res = append(res, t)
	}
	return res, nil
}
