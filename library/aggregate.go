package library

import "github.com/fwojciec/blocklib"

// PageResult is the settled outcome of harvesting one page.
type PageResult struct {
	URL    string
	Blocks *blocklib.AggregatedBlocks
	Err    error
}

// Aggregate merges settled page results, in the order given, into a single
// aggregate. Failed pages contribute nothing.
func Aggregate(results []PageResult) *blocklib.AggregatedBlocks {
	agg := blocklib.NewAggregatedBlocks()
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		agg.Merge(result.Blocks)
	}
	return agg
}
