package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blocklib"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// documentShell is the page every reconstructed document starts from.
const documentShell = "<html><head></head><body><main></main></body></html>"

// Ensure Reconstructor implements blocklib.Reconstructor at compile time.
var _ blocklib.Reconstructor = (*Reconstructor)(nil)

// Reconstructor rebuilds reduced blocks as standalone library documents.
type Reconstructor struct {
	builder blocklib.BlockBuilder
}

// NewReconstructor creates a new Reconstructor that renders blocks with builder.
func NewReconstructor(builder blocklib.BlockBuilder) *Reconstructor {
	return &Reconstructor{builder: builder}
}

// Reconstruct returns a document with one section per variant, each closed
// by a Library Metadata block and separated by break paragraphs.
func (r *Reconstructor) Reconstruct(block *blocklib.ReducedBlock, keepContext bool) (*blocklib.LibraryDocument, error) {
	if block == nil || len(block.Variants) == 0 {
		return nil, blocklib.Errorf(blocklib.EINVALID, "block has no variants")
	}

	sections := make([]string, 0, len(block.Variants))
	for _, variant := range block.Variants {
		var content string
		var err error
		if keepContext {
			content, err = r.contextSection(block.Name, variant)
		} else {
			content, err = r.stripSection(block.Name, variant)
		}
		if err != nil {
			return nil, err
		}

		metadata, err := r.builder.BuildBlock(blocklib.MetadataTable(
			blocklib.LibraryMetadataBlock,
			blocklib.Field{Key: "name", Value: variant.Name},
		))
		if err != nil {
			return nil, err
		}

		sections = append(sections, content+metadata)
	}

	doc, err := assembleDocument(sections)
	if err != nil {
		return nil, err
	}

	return &blocklib.LibraryDocument{
		Name:      block.Name,
		SourceURL: block.Variants[0].SourceURL,
		Sections:  sections,
		HTML:      doc,
	}, nil
}

// stripSection replaces the whole section with the rebuilt target block.
func (r *Reconstructor) stripSection(blockName string, variant *blocklib.VariantRecord) (string, error) {
	section, err := parseSection(variant.SectionHTML)
	if err != nil {
		return "", err
	}

	want := variant.ClassList(blockName)
	target := section.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return hasClassList(sel.Nodes[0], want)
	}).First()
	if target.Length() == 0 {
		return "", blocklib.Errorf(blocklib.ENOTFOUND, "block %q not found in section from %s",
			strings.Join(want, " "), variant.SourceURL)
	}

	return r.builder.BuildBlock(&blocklib.BlockTable{
		Name:     blockName,
		Variants: variant.InstanceVariants,
		Rows:     cellGrid(target),
	})
}

// sectionAction is the decision taken for one child of a section.
type sectionAction int

const (
	keepChild sectionAction = iota
	dropChild
	rebuildChild
)

// contextSection keeps the section's layout and default content, rebuilds
// the first block whose classes match the variant together with any section
// metadata, and drops every other block.
func (r *Reconstructor) contextSection(blockName string, variant *blocklib.VariantRecord) (string, error) {
	section, err := parseSection(variant.SectionHTML)
	if err != nil {
		return "", err
	}

	want := variant.ClassList(blockName)
	children := section.Contents().Nodes

	actions := make([]sectionAction, len(children))
	found := false
	for i, child := range children {
		actions[i] = classifyChild(child, blockName, want, found)
		if actions[i] == rebuildChild && blockNameOf(child) == blockName {
			found = true
		}
	}
	if !found {
		return "", blocklib.Errorf(blocklib.ENOTFOUND, "block %q not found in section from %s",
			strings.Join(want, " "), variant.SourceURL)
	}

	var sb strings.Builder
	for i, child := range children {
		switch actions[i] {
		case dropChild:
			continue
		case keepChild:
			if err := html.Render(&sb, child); err != nil {
				return "", err
			}
		case rebuildChild:
			rebuilt, err := r.rebuildChild(child)
			if err != nil {
				return "", err
			}
			sb.WriteString(rebuilt)
		}
	}
	return sb.String(), nil
}

// rebuildChild renders a block element as a table inside a copy of the
// element, using the element's own classes as name and variants. The copy
// keeps every attribute of the element.
func (r *Reconstructor) rebuildChild(n *html.Node) (string, error) {
	classList := blocklib.ParseClassList(attr(n, "class"))

	table, err := r.builder.BuildBlock(&blocklib.BlockTable{
		Name:     classList[0],
		Variants: classList[1:],
		Rows:     cellGrid(goquery.NewDocumentFromNode(n).Selection),
	})
	if err != nil {
		return "", err
	}

	wrapper := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom, Attr: slices.Clone(n.Attr)}
	nodes, err := html.ParseFragment(strings.NewReader(table), wrapper)
	if err != nil {
		return "", blocklib.Errorf(blocklib.EINVALID, "failed to parse block table: %v", err)
	}
	for _, c := range nodes {
		wrapper.AppendChild(c)
	}

	var sb strings.Builder
	if err := html.Render(&sb, wrapper); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// classifyChild decides what happens to a section child. Non-div nodes are
// default content and stay. Of the divs named after the block only the first
// one carrying exactly the wanted classes survives; section metadata is
// rebuilt; everything else is dropped.
func classifyChild(n *html.Node, blockName string, want []string, found bool) sectionAction {
	if n.Type != html.ElementNode || n.DataAtom != atom.Div {
		return keepChild
	}

	switch blockNameOf(n) {
	case blockName:
		if found || !hasClassList(n, want) {
			return dropChild
		}
		return rebuildChild
	case blocklib.SectionMetadataBlock:
		return rebuildChild
	default:
		return dropChild
	}
}

// cellGrid reads a block's rows and the cells within them.
// Each cell is returned as its inner HTML.
func cellGrid(block *goquery.Selection) [][]string {
	var rows [][]string
	block.ChildrenFiltered("div").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.ChildrenFiltered("div").Each(func(_ int, cell *goquery.Selection) {
			content, _ := cell.Html()
			cells = append(cells, content)
		})
		rows = append(rows, cells)
	})
	return rows
}

// assembleDocument places every section in main and separates consecutive
// sections with a break paragraph.
func assembleDocument(sections []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(documentShell))
	if err != nil {
		return "", err
	}

	main := doc.Find("main")
	for _, section := range sections {
		main.AppendHtml("<div>" + section + "</div>")
	}

	divs := main.ChildrenFiltered("div")
	last := divs.Length() - 1
	divs.Each(func(i int, sel *goquery.Selection) {
		if i < last {
			sel.AfterHtml("<p>" + blocklib.SectionBreak + "</p>")
		}
	})

	return doc.Html()
}

// parseSection parses section markup into a detached section element.
func parseSection(markup string) (*goquery.Selection, error) {
	section := newElement(atom.Div)
	nodes, err := html.ParseFragment(strings.NewReader(markup), section)
	if err != nil {
		return nil, blocklib.Errorf(blocklib.EINVALID, "failed to parse section: %v", err)
	}
	for _, n := range nodes {
		section.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(section).Selection, nil
}

func hasClassList(n *html.Node, want []string) bool {
	return slices.Equal(blocklib.ParseClassList(attr(n, "class")), want)
}

func blockNameOf(n *html.Node) string {
	classList := blocklib.ParseClassList(attr(n, "class"))
	if len(classList) == 0 {
		return ""
	}
	return classList[0]
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
