package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/places"
)

// ensure sqliteBackend implements export.Backend
var _ export.Backend = (*sqliteBackend)(nil)

type sqliteBackend struct {
	db  *sql.DB
	dsn string
}

const schema = `
CREATE TABLE places (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	address TEXT,
	contact TEXT,
	link TEXT,
	details TEXT,
	fetched_at DATETIME NOT NULL
);
`

// New creates a SQLite export backend. The places table is dropped and
// rebuilt on every Write inside one transaction, so each run fully replaces
// the previous one and a failed run leaves the old data intact.
func New(dsn string) (export.Backend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &sqliteBackend{db: db, dsn: dsn}, nil
}

func (b *sqliteBackend) Write(ctx context.Context, rs *places.ResultSet) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS places`); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	const insert = `
	INSERT INTO places (position, id, name, address, contact, link, details, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, rec := range rs.Records() {
		_, err := tx.ExecContext(ctx, insert,
			i+1,
			rec.ID,
			rec.Name,
			rec.Address,
			rec.Contact,
			rec.Link,
			rec.Details,
			rec.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (b *sqliteBackend) Path() string {
	return b.dsn
}

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}
