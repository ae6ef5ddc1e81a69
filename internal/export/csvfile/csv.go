package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/places"
)

// ensure csvBackend implements export.Backend
var _ export.Backend = (*csvBackend)(nil)

type csvBackend struct {
	path string
}

// New creates a CSV export backend writing to path.
func New(path string) export.Backend {
	return &csvBackend{path: path}
}

func (b *csvBackend) Write(ctx context.Context, rs *places.ResultSet) error {
	tmp := b.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(export.Columns)
	if writeErr == nil {
		for _, rec := range rs.Records() {
			if writeErr = ctx.Err(); writeErr != nil {
				break
			}
			if writeErr = w.Write(export.Row(rec)); writeErr != nil {
				break
			}
		}
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write csv: %w", writeErr)
	}

	return export.ReplaceFile(tmp, b.path)
}

func (b *csvBackend) Path() string {
	return b.path
}

func (b *csvBackend) Close() error {
	return nil
}
