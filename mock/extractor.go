package mock

import "github.com/fwojciec/blocklib"

var _ blocklib.BlockExtractor = (*BlockExtractor)(nil)

// BlockExtractor is a mock implementation of blocklib.BlockExtractor.
type BlockExtractor struct {
	ExtractFn func(html string, sourceURL string) (*blocklib.AggregatedBlocks, error)
}

func (e *BlockExtractor) Extract(html string, sourceURL string) (*blocklib.AggregatedBlocks, error) {
	return e.ExtractFn(html, sourceURL)
}

var _ blocklib.BlockBuilder = (*BlockBuilder)(nil)

// BlockBuilder is a mock implementation of blocklib.BlockBuilder.
type BlockBuilder struct {
	BuildBlockFn func(t *blocklib.BlockTable) (string, error)
}

func (b *BlockBuilder) BuildBlock(t *blocklib.BlockTable) (string, error) {
	return b.BuildBlockFn(t)
}
