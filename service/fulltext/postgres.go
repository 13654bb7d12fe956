package fulltext

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

// entriesPageSize bounds how many entries one cursor page fetches.
const entriesPageSize = 500

// undefinedTable is the Postgres error code for a missing relation; a partition
// that was never built maps to it and is treated as empty.
const undefinedTable = "42P01"

var langSanitizeRx = regexp.MustCompile(`[^a-z0-9_]+`)

// NewPostgres creates a new instance of the fulltext index. Every partition is
// a separate table so that it can be compacted independently.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Index {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the fulltext index with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// Partition returns the partition for the given language.
func (p Postgres) Partition(language string) Partition {
	return pgPartition{conn: p.conn, schema: p.schema, language: language}
}

// Store indexes one unit into the partition of its language.
func (p Postgres) Store(ctx context.Context, u model.Unit) error {
	part := pgPartition{conn: p.conn, schema: p.schema, language: u.Language}
	err := part.ensure(ctx)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.fulltext.postgres.Store: ensure",
			Params: errors.Params{"language": u.Language},
		})
	}
	text := u.Target
	if u.Language == "" {
		text = u.Source
	}
	q := fmt.Sprintf(
		`INSERT INTO %s ("unit_id", "document") VALUES ($1, to_tsvector('simple', $2))
		ON CONFLICT ("unit_id") DO UPDATE SET "document" = EXCLUDED."document"`,
		part.table(),
	)
	_, err = p.conn.Exec(ctx, q, u.ID, text)
	return errors.WrapContext(err, errors.Context{
		Path:   "service.fulltext.postgres.Store: exec",
		Params: errors.Params{"unit": u.ID, "language": u.Language},
	})
}

type pgPartition struct {
	conn     *pgxpool.Pool
	schema   string
	language string
}

// Language returns the target language of the partition; empty means source.
func (p pgPartition) Language() string {
	return p.language
}

// Entries returns a fresh keyset-paginated cursor over the stored entries.
// A never-built partition yields an empty cursor.
func (p pgPartition) Entries(ctx context.Context) Cursor {
	return &pgCursor{part: p}
}

// Remove deletes the entry of the unit from the partition.
func (p pgPartition) Remove(ctx context.Context, unitID uint64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE "unit_id" = $1`, p.table())
	_, err := p.conn.Exec(ctx, q, unitID)
	if isUndefinedTable(err) {
		return nil
	}
	return errors.WrapContext(err, errors.Context{
		Path:   "service.fulltext.postgres.Remove: exec",
		Params: errors.Params{"unit": unitID, "language": p.language},
	})
}

// Optimize compacts the partition table. A never-built partition is skipped.
func (p pgPartition) Optimize(ctx context.Context) error {
	_, err := p.conn.Exec(ctx, "VACUUM ANALYZE "+p.table())
	if isUndefinedTable(err) {
		return nil
	}
	return errors.WrapContext(err, errors.Context{
		Path:   "service.fulltext.postgres.Optimize: exec",
		Params: errors.Params{"language": p.language},
	})
}

func (p pgPartition) ensure(ctx context.Context) error {
	q := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s ("unit_id" BIGINT PRIMARY KEY, "document" TSVECTOR)`,
		p.table(),
	)
	_, err := p.conn.Exec(ctx, q)
	return err
}

func (p pgPartition) table() string {
	if p.language == "" {
		return fmt.Sprintf(`"%s"."fulltext_src"`, p.schema)
	}
	lang := langSanitizeRx.ReplaceAllString(p.language, "_")
	return fmt.Sprintf(`"%s"."fulltext_trg_%s"`, p.schema, lang)
}

type pgCursor struct {
	part  pgPartition
	page  []uint64
	pos   int
	last  uint64
	done  bool
	err   error
	entry model.IndexEntry
}

// Next advances the cursor, fetching the next page when the current one is drained.
func (c *pgCursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if c.pos >= len(c.page) {
		if c.done {
			return false
		}
		c.fetch(ctx)
		if c.err != nil || len(c.page) == 0 {
			return false
		}
	}
	c.entry = model.IndexEntry{UnitID: c.page[c.pos], Language: c.part.language}
	c.last = c.page[c.pos]
	c.pos++
	return true
}

// Entry returns the entry the cursor currently points at.
func (c *pgCursor) Entry() model.IndexEntry {
	return c.entry
}

// Err returns the first error the cursor encountered, if any.
func (c *pgCursor) Err() error {
	return c.err
}

func (c *pgCursor) fetch(ctx context.Context) {
	q := fmt.Sprintf(
		`SELECT "unit_id" FROM %s WHERE "unit_id" > $1 ORDER BY "unit_id" LIMIT $2`,
		c.part.table(),
	)
	rows, err := c.part.conn.Query(ctx, q, c.last, entriesPageSize)
	if err != nil {
		if isUndefinedTable(err) {
			c.done = true
			return
		}
		c.err = errors.WrapContext(err, errors.Context{
			Path:   "service.fulltext.postgres.cursor: query",
			Params: errors.Params{"language": c.part.language},
		})
		return
	}
	defer rows.Close()
	c.page = c.page[:0]
	c.pos = 0
	var id uint64
	for rows.Next() {
		err = rows.Scan(&id)
		if err != nil {
			c.err = errors.WrapContext(err, errors.Context{
				Path:   "service.fulltext.postgres.cursor: scan",
				Params: errors.Params{"language": c.part.language},
			})
			return
		}
		c.page = append(c.page, id)
	}
	if len(c.page) < entriesPageSize {
		c.done = true
	}
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return err != nil && stderrors.As(err, &pgErr) && pgErr.Code == undefinedTable
}
