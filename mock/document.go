package mock

import (
	"context"

	"github.com/fwojciec/blocklib"
)

var _ blocklib.Reconstructor = (*Reconstructor)(nil)

// Reconstructor is a mock implementation of blocklib.Reconstructor.
type Reconstructor struct {
	ReconstructFn func(block *blocklib.ReducedBlock, keepContext bool) (*blocklib.LibraryDocument, error)
}

func (r *Reconstructor) Reconstruct(block *blocklib.ReducedBlock, keepContext bool) (*blocklib.LibraryDocument, error) {
	return r.ReconstructFn(block, keepContext)
}

var _ blocklib.DocumentConverter = (*DocumentConverter)(nil)

// DocumentConverter is a mock implementation of blocklib.DocumentConverter.
type DocumentConverter struct {
	ConvertFn   func(ctx context.Context, sourceURL string, doc *blocklib.LibraryDocument) ([]byte, error)
	ExtensionFn func() string
}

func (c *DocumentConverter) Convert(ctx context.Context, sourceURL string, doc *blocklib.LibraryDocument) ([]byte, error) {
	return c.ConvertFn(ctx, sourceURL, doc)
}

func (c *DocumentConverter) Extension() string {
	return c.ExtensionFn()
}
