package excelize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/blocklib"
	"github.com/fwojciec/blocklib/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xl "github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := xl.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excelize.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(excelize.SheetName)
	require.NoError(t, err)
	return rows
}

func TestWorkbookWriter_WriteWorkbook(t *testing.T) {
	t.Parallel()

	t.Run("writes header and entries in order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tools", "sidekick", "library.xlsx")
		w := excelize.NewWorkbookWriter(path)

		err := w.WriteWorkbook(context.Background(), []*blocklib.LibraryEntry{
			{Name: "hero", Path: "/tools/sidekick/blocks/hero"},
			{Name: "Cards", Path: "/tools/sidekick/blocks/cards"},
		})

		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"name", "path"},
			{"hero", "/tools/sidekick/blocks/hero"},
			{"Cards", "/tools/sidekick/blocks/cards"},
		}, readRows(t, path))
	})

	t.Run("empty library has only the header", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "library.xlsx")

		require.NoError(t, excelize.NewWorkbookWriter(path).WriteWorkbook(context.Background(), nil))

		assert.Equal(t, [][]string{{"name", "path"}}, readRows(t, path))
	})

	t.Run("replaces an existing workbook", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "library.xlsx")
		w := excelize.NewWorkbookWriter(path)
		require.NoError(t, w.WriteWorkbook(context.Background(), []*blocklib.LibraryEntry{{Name: "old", Path: "/old"}}))

		require.NoError(t, w.WriteWorkbook(context.Background(), []*blocklib.LibraryEntry{{Name: "new", Path: "/new"}}))

		assert.Equal(t, [][]string{{"name", "path"}, {"new", "/new"}}, readRows(t, path))
	})

	t.Run("fails when the location is not writable", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		err := excelize.NewWorkbookWriter(filepath.Join(blocker, "library.xlsx")).WriteWorkbook(context.Background(), nil)

		require.Error(t, err)
	})
}
