package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ammarnisar/placescout/internal/places"
)

func TestSQLiteBackend_WriteAndRerun(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "places.db")
	b, err := New(dsn)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	rs := places.NewResultSet()
	rs.Add(places.Record{ID: "a", Name: "Cafe A", Address: "123 Main St", Contact: "0300-0000000", Link: "https://cafe-a.example.com/", Details: "good beans", FetchedAt: now})
	rs.Add(places.Record{ID: "b", Name: "Cafe B", Address: "45 Park Rd", FetchedAt: now})

	if err := b.Write(ctx, rs); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	var name, address, contact, details string
	row := db.QueryRow(`SELECT name, address, contact, details FROM places WHERE position = 1`)
	if err := row.Scan(&name, &address, &contact, &details); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if name != "Cafe A" || address != "123 Main St" || contact != "0300-0000000" || details != "good beans" {
		t.Errorf("unexpected first row: %s / %s / %s / %s", name, address, contact, details)
	}

	// A rerun replaces everything.
	rs2 := places.NewResultSet()
	rs2.Add(places.Record{ID: "c", Name: "Cafe C", FetchedAt: now})
	if err := b.Write(ctx, rs2); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after rerun, got %d", count)
	}
}

func TestSQLiteBackend_EmptyResultSet(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "places.db")
	b, err := New(dsn)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	defer b.Close()

	if err := b.Write(context.Background(), places.NewResultSet()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d rows", count)
	}
}
