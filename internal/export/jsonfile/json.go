package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/places"
)

// ensure jsonBackend implements export.Backend
var _ export.Backend = (*jsonBackend)(nil)

type jsonBackend struct {
	path string
}

// New creates a JSON export backend writing to path. The document is an
// array of records in extraction order; a zero-record run writes an empty
// array rather than nothing.
func New(path string) export.Backend {
	return &jsonBackend{path: path}
}

func (b *jsonBackend) Write(ctx context.Context, rs *places.ResultSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := rs.Records()
	if records == nil {
		records = []places.Record{}
	}

	tmp := b.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	writeErr := enc.Encode(records)

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write json: %w", writeErr)
	}

	return export.ReplaceFile(tmp, b.path)
}

func (b *jsonBackend) Path() string {
	return b.path
}

func (b *jsonBackend) Close() error {
	return nil
}
