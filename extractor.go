package blocklib

// BlockExtractor finds block occurrences in a published page.
type BlockExtractor interface {
	// Extract parses the page HTML and returns every content block found in
	// the page's main sections, grouped by block name. A page without blocks
	// yields an empty aggregate, not an error.
	Extract(html string, sourceURL string) (*AggregatedBlocks, error)
}
