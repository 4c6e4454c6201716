package fs

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/fwojciec/blocklib"
)

// Ensure BlockInventory implements blocklib.BlockInventory at compile time.
var _ blocklib.BlockInventory = (*BlockInventory)(nil)

// BlockInventory lists the blocks of a local project: one directory per
// block under the project's blocks directory.
type BlockInventory struct {
	dir string
}

// NewBlockInventory creates a BlockInventory reading dir.
func NewBlockInventory(dir string) *BlockInventory {
	return &BlockInventory{dir: dir}
}

// ListBlocks returns the names of the block directories in directory order.
// Hidden directories are ignored.
func (i *BlockInventory) ListBlocks(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(i.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, blocklib.Errorf(blocklib.ENOTFOUND, "blocks directory %q does not exist", i.dir)
	} else if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
