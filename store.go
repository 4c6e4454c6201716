package blocklib

import "context"

// LibraryStore persists converted block documents with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type LibraryStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Commit() error
	Abort() error
}

// WorkbookWriter writes the library index.
type WorkbookWriter interface {
	WriteWorkbook(ctx context.Context, entries []*LibraryEntry) error
}

// BlockInventory lists the blocks implemented by the local project.
type BlockInventory interface {
	// ListBlocks returns the names of the project's blocks.
	ListBlocks(ctx context.Context) ([]string, error)
}
