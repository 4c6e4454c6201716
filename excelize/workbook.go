// Package excelize writes the block library index as an Excel workbook.
package excelize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/blocklib"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the block index.
const SheetName = "blocks"

// Ensure WorkbookWriter implements blocklib.WorkbookWriter at compile time.
var _ blocklib.WorkbookWriter = (*WorkbookWriter)(nil)

// WorkbookWriter writes library entries to a single-sheet workbook with a
// name/path header row followed by one row per entry.
type WorkbookWriter struct {
	path string
}

// NewWorkbookWriter creates a WorkbookWriter for the workbook at path.
func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{path: path}
}

// WriteWorkbook replaces the workbook with one holding entries in order.
func (w *WorkbookWriter) WriteWorkbook(ctx context.Context, entries []*blocklib.LibraryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	// New files start with a default sheet; rename it rather than adding one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]any{"name", "path"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{entry.Name, entry.Path}); err != nil {
			return fmt.Errorf("write entry %q: %w", entry.Name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
