package csvfile

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/ammarnisar/placescout/internal/places"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	return rows
}

func TestCSV_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	b := New(path)

	rs := places.NewResultSet()
	rs.Add(places.Record{Name: "Cafe A", Address: "123 Main St", Contact: "0300-0000000"})
	rs.Add(places.Record{Name: "Cafe B", Address: "45 Park Rd"})

	if err := b.Write(context.Background(), rs); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][1] != "Address" || rows[0][2] != "Contact" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[2][2] != "" {
		t.Errorf("expected empty contact cell, got %q", rows[2][2])
	}
}

func TestCSV_EmptyResultSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	b := New(path)

	if err := b.Write(context.Background(), places.NewResultSet()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestCSV_RerunOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	b := New(path)
	ctx := context.Background()

	rs := places.NewResultSet()
	rs.Add(places.Record{Name: "Cafe A"})
	rs.Add(places.Record{Name: "Cafe B"})
	if err := b.Write(ctx, rs); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	rs2 := places.NewResultSet()
	rs2.Add(places.Record{Name: "Cafe C"})
	if err := b.Write(ctx, rs2); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row after rerun, got %d", len(rows))
	}
}

func TestCSV_FailedWriteLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "places.csv")
	b := New(path)

	rs := places.NewResultSet()
	rs.Add(places.Record{Name: "Cafe A"})
	if err := b.Write(context.Background(), rs); err == nil {
		t.Fatal("expected failure for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file at %s", path)
	}
}
