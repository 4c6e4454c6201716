// Package docx converts library documents to Word documents.
//
// The document body is WordprocessingML generated with etree from the
// document's HTML: paragraphs, headings, lists, block tables (with merged
// header cells), emphasis and hyperlinks. Images are not embedded; they are
// written as links to their published location.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/blocklib"
	"golang.org/x/net/html"
)

// Ensure Converter implements blocklib.DocumentConverter at compile time.
var _ blocklib.DocumentConverter = (*Converter)(nil)

// Converter renders library documents as .docx packages.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Extension returns ".docx".
func (c *Converter) Extension() string {
	return ".docx"
}

// Convert renders doc as a .docx package. Relative links and image
// sources are resolved against sourceURL.
func (c *Converter) Convert(ctx context.Context, sourceURL string, doc *blocklib.LibraryDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil || strings.TrimSpace(doc.HTML) == "" {
		return nil, blocklib.Errorf(blocklib.EINVALID, "empty HTML input")
	}

	root, err := html.Parse(strings.NewReader(doc.HTML))
	if err != nil {
		return nil, blocklib.Errorf(blocklib.EINVALID, "parse document %q: %v", doc.Name, err)
	}

	var base *url.URL
	if sourceURL != "" {
		if base, err = url.Parse(sourceURL); err != nil {
			return nil, blocklib.Errorf(blocklib.EINVALID, "invalid source URL %q: %v", sourceURL, err)
		}
	}

	b := newBody(base)
	b.render(findBody(root))

	return pack(b)
}

// pack writes the package parts into a zip container.
func pack(b *body) ([]byte, error) {
	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"word/document.xml", b.document()},
		{"word/_rels/document.xml.rels", b.relationships()},
		{"word/styles.xml", styles()},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := part.doc.WriteTo(w); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

// findBody returns the body element of a parsed document.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}
