package xlsx

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/places"
)

// ensure xlsxBackend implements export.Backend
var _ export.Backend = (*xlsxBackend)(nil)

// SheetName is the single sheet every export carries.
const SheetName = "Sheet1"

type xlsxBackend struct {
	path string
}

// New creates a spreadsheet export backend writing to path.
func New(path string) export.Backend {
	return &xlsxBackend{path: path}
}

func (b *xlsxBackend) Write(ctx context.Context, rs *places.ResultSet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range export.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for r, rec := range rs.Records() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for c, v := range export.Row(rec) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	// Save to a temp file first; only a complete workbook replaces the
	// previous export. The temp name must keep the .xlsx extension or
	// SaveAs refuses the format.
	tmp := b.path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save workbook: %w", err)
	}

	return export.ReplaceFile(tmp, b.path)
}

func (b *xlsxBackend) Path() string {
	return b.path
}

func (b *xlsxBackend) Close() error {
	return nil
}
