// Package htmltomarkdown converts library documents to Markdown.
package htmltomarkdown

import (
	"context"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/blocklib"
)

// Ensure Converter implements blocklib.DocumentConverter at compile time.
var _ blocklib.DocumentConverter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert library documents to Markdown.
// Block tables become Markdown tables; relative links and images are
// resolved against the page the document was harvested from.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms the document HTML into Markdown.
func (c *Converter) Convert(ctx context.Context, sourceURL string, doc *blocklib.LibraryDocument) ([]byte, error) {
	if doc == nil || strings.TrimSpace(doc.HTML) == "" {
		return nil, blocklib.Errorf(blocklib.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(doc.HTML,
		converter.WithContext(ctx),
		converter.WithDomain(siteDomain(sourceURL)),
	)
	if err != nil {
		return nil, err
	}

	return []byte(result), nil
}

// Extension returns ".md".
func (c *Converter) Extension() string {
	return ".md"
}

// siteDomain returns the scheme and host of rawURL, or "" if it has none.
func siteDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
