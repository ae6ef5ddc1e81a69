package export

import (
	"context"
	"fmt"
	"os"

	"github.com/ammarnisar/placescout/internal/places"
)

// Columns is the fixed header of every flat-file export: column order
// matches the Record field order and never varies between runs.
var Columns = []string{"Name", "Address", "Contact"}

// Row returns the flat-file cells for a record in Columns order.
func Row(r places.Record) []string {
	return []string{r.Name, r.Address, r.Contact}
}

// Backend writes one run's ResultSet to its destination. Write replaces
// whatever a previous run left behind; nothing is appended or merged. A
// failed Write must not leave a partial artifact observable at Path.
type Backend interface {
	Write(ctx context.Context, rs *places.ResultSet) error
	Path() string
	Close() error
}

// ReplaceFile atomically moves a fully-written temp file over the target
// path, so a crash or write failure never exposes a partial export.
func ReplaceFile(tmpPath, path string) error {
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
