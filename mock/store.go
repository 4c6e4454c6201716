package mock

import (
	"context"

	"github.com/fwojciec/blocklib"
)

var _ blocklib.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is a mock implementation of blocklib.LibraryStore.
type LibraryStore struct {
	SaveFn   func(ctx context.Context, name string, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *LibraryStore) Save(ctx context.Context, name string, data []byte) error {
	return s.SaveFn(ctx, name, data)
}

func (s *LibraryStore) Commit() error {
	return s.CommitFn()
}

func (s *LibraryStore) Abort() error {
	return s.AbortFn()
}

var _ blocklib.WorkbookWriter = (*WorkbookWriter)(nil)

// WorkbookWriter is a mock implementation of blocklib.WorkbookWriter.
type WorkbookWriter struct {
	WriteWorkbookFn func(ctx context.Context, entries []*blocklib.LibraryEntry) error
}

func (w *WorkbookWriter) WriteWorkbook(ctx context.Context, entries []*blocklib.LibraryEntry) error {
	return w.WriteWorkbookFn(ctx, entries)
}

var _ blocklib.BlockInventory = (*BlockInventory)(nil)

// BlockInventory is a mock implementation of blocklib.BlockInventory.
type BlockInventory struct {
	ListBlocksFn func(ctx context.Context) ([]string, error)
}

func (i *BlockInventory) ListBlocks(ctx context.Context) ([]string, error) {
	return i.ListBlocksFn(ctx)
}
