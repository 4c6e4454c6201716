// Package goquery implements block harvesting and reconstruction on top of
// goquery and golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blocklib"
)

// blockSelector matches block elements: children of a section, which is
// itself a child of the page's main element.
const blockSelector = "main > div > div"

// Ensure BlockExtractor implements blocklib.BlockExtractor at compile time.
var _ blocklib.BlockExtractor = (*BlockExtractor)(nil)

// BlockExtractor finds block occurrences in published page HTML.
type BlockExtractor struct{}

// NewBlockExtractor creates a new BlockExtractor.
func NewBlockExtractor() *BlockExtractor {
	return &BlockExtractor{}
}

// Extract returns every content block in the page's sections.
// Elements without classes and ignored structural blocks are skipped.
func (e *BlockExtractor) Extract(html string, sourceURL string) (*blocklib.AggregatedBlocks, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, blocklib.Errorf(blocklib.EINVALID, "failed to parse HTML: %v", err)
	}

	agg := blocklib.NewAggregatedBlocks()
	var renderErr error

	doc.Find(blockSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		classList := blocklib.ParseClassList(class)
		if len(classList) == 0 {
			return true
		}

		blockName := classList[0]
		if blocklib.IsIgnoredBlock(blockName) {
			return true
		}

		sectionHTML, err := sel.Parent().Html()
		if err != nil {
			renderErr = err
			return false
		}

		agg.Add(&blocklib.BlockInstance{
			BlockName:   blockName,
			SourceURL:   sourceURL,
			Variants:    classList[1:],
			SectionHTML: sectionHTML,
		})
		return true
	})

	if renderErr != nil {
		return nil, blocklib.Errorf(blocklib.EINTERNAL, "failed to render section: %v", renderErr)
	}

	return agg, nil
}
