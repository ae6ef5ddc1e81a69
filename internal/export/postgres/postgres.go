package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/places"
)

// ensure postgresBackend implements export.Backend
var _ export.Backend = (*postgresBackend)(nil)

type postgresBackend struct {
	pool *pgxpool.Pool
	dsn  string
}

const schema = `
CREATE TABLE IF NOT EXISTS places (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	address TEXT,
	contact TEXT,
	link TEXT,
	details TEXT,
	fetched_at TIMESTAMPTZ NOT NULL
);
`

// New creates a Postgres export backend. Each Write truncates and refills
// the places table inside one transaction, so runs replace rather than
// accumulate and a failed run leaves the previous data untouched.
func New(ctx context.Context, dsn string) (export.Backend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &postgresBackend{pool: pool, dsn: dsn}, nil
}

func (b *postgresBackend) Write(ctx context.Context, rs *places.ResultSet) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE places`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	const insert = `
	INSERT INTO places (position, id, name, address, contact, link, details, fetched_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for i, rec := range rs.Records() {
		_, err := tx.Exec(ctx, insert,
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

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (b *postgresBackend) Path() string {
	return b.dsn
}

func (b *postgresBackend) Close() error {
	b.pool.Close()
	return nil
}
