package docx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// format holds the run properties inherited by nested inline content.
type format struct {
	bold      bool
	italic    bool
	underline bool
	link      bool
}

// relationship is an external hyperlink target of the document part.
type relationship struct {
	id     string
	target string
}

// body renders HTML into a WordprocessingML body.
type body struct {
	base  *url.URL
	root  *etree.Element
	links []relationship
}

func newBody(base *url.URL) *body {
	return &body{
		base: base,
		root: etree.NewElement("w:body"),
	}
}

func (b *body) render(n *html.Node) {
	if n != nil {
		b.blocks(b.root, n, format{})
	}
	sectPr := b.root.CreateElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "11906")
	pgSz.CreateAttr("w:h", "16838")
}

// document returns the main document part.
func (b *body) document() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsMain)
	root.CreateAttr("xmlns:r", nsRelationships)
	root.AddChild(b.root)
	return doc
}

// relationships returns the relationships part of the main document.
func (b *body) relationships() *etree.Document {
	doc := newXMLDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPackageRels)
	addRelationship(rels, "rId1", relStyles, "styles.xml", false)
	for _, rel := range b.links {
		addRelationship(rels, rel.id, relHyperlink, rel.target, true)
	}
	return doc
}

// blocks renders the children of n as block content of parent. Runs of
// inline children are gathered into paragraphs.
func (b *body) blocks(parent *etree.Element, n *html.Node, f format) {
	var pending []*html.Node
	flush := func() {
		if len(pending) > 0 && hasText(pending) {
			p := parent.CreateElement("w:p")
			for _, c := range pending {
				b.inline(p, c, f)
			}
		}
		pending = pending[:0]
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlock(c) {
			pending = append(pending, c)
			continue
		}
		flush()
		b.block(parent, c, f)
	}
	flush()
}

func (b *body) block(parent *etree.Element, n *html.Node, f format) {
	switch n.DataAtom {
	case atom.P:
		b.paragraph(parent, n, "", f)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		b.paragraph(parent, n, "Heading"+n.Data[1:], f)
	case atom.Ul:
		b.list(parent, n, styleListBullet, f)
	case atom.Ol:
		b.list(parent, n, styleListNumber, f)
	case atom.Table:
		b.table(parent, n, f)
	case atom.Hr:
		parent.CreateElement("w:p")
	default:
		b.blocks(parent, n, f)
	}
}

func (b *body) paragraph(parent *etree.Element, n *html.Node, style string, f format) {
	p := parent.CreateElement("w:p")
	if style != "" {
		setVal(p.CreateElement("w:pPr").CreateElement("w:pStyle"), style)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.inline(p, c, f)
	}
}

// list renders every item as a list paragraph. Ordered items carry their
// number in the text; nested lists follow their item.
func (b *body) list(parent *etree.Element, n *html.Node, style string, f format) {
	number := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		number++

		p := parent.CreateElement("w:p")
		setVal(p.CreateElement("w:pPr").CreateElement("w:pStyle"), style)
		prefix := "• "
		if style == styleListNumber {
			prefix = strconv.Itoa(number) + ". "
		}
		b.run(p, prefix, f)

		var nested []*html.Node
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				nested = append(nested, c)
				continue
			}
			b.inline(p, c, f)
		}
		for _, c := range nested {
			b.block(parent, c, f)
		}
	}
}

// table renders an HTML table. Column spans become grid spans; header
// cells are bold.
func (b *body) table(parent *etree.Element, n *html.Node, f format) {
	rows := tableRows(n)
	cols := 0
	for _, row := range rows {
		width := 0
		for _, cell := range row {
			width += colspan(cell)
		}
		cols = max(cols, width)
	}

	tbl := parent.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	setVal(tblPr.CreateElement("w:tblStyle"), styleTableGrid)
	tblW := tblPr.CreateElement("w:tblW")
	tblW.CreateAttr("w:w", "5000")
	tblW.CreateAttr("w:type", "pct")

	grid := tbl.CreateElement("w:tblGrid")
	for range cols {
		grid.CreateElement("w:gridCol")
	}

	for _, row := range rows {
		tr := tbl.CreateElement("w:tr")
		for _, cell := range row {
			tc := tr.CreateElement("w:tc")
			if span := colspan(cell); span > 1 {
				setVal(tc.CreateElement("w:tcPr").CreateElement("w:gridSpan"), strconv.Itoa(span))
			}

			cf := f
			if cell.DataAtom == atom.Th {
				cf.bold = true
			}
			b.blocks(tc, cell, cf)

			// A cell must end with a paragraph.
			if children := tc.ChildElements(); len(children) == 0 || children[len(children)-1].Tag != "p" {
				tc.CreateElement("w:p")
			}
		}
	}

	// Tables directly following each other would merge.
	parent.CreateElement("w:p")
}

// inline renders n as runs of p.
func (b *body) inline(p *etree.Element, n *html.Node, f format) {
	switch n.Type {
	case html.TextNode:
		if text := collapseSpace(n.Data); text != "" {
			b.run(p, text, f)
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		f.bold = true
	case atom.Em, atom.I:
		f.italic = true
	case atom.U:
		f.underline = true
	case atom.Br:
		p.CreateElement("w:r").CreateElement("w:br")
		return
	case atom.A:
		href := attr(n, "href")
		if href == "" {
			break
		}
		h := b.hyperlink(p, href)
		f.link = true
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.inline(h, c, f)
		}
		return
	case atom.Img:
		src := attr(n, "src")
		if src == "" {
			return
		}
		text := attr(n, "alt")
		if text == "" {
			text = b.resolve(src)
		}
		f.link = true
		b.run(b.hyperlink(p, src), text, f)
		return
	case atom.Source, atom.Script, atom.Style:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.inline(p, c, f)
	}
}

func (b *body) run(p *etree.Element, text string, f format) {
	r := p.CreateElement("w:r")
	if f != (format{}) {
		rPr := r.CreateElement("w:rPr")
		if f.link {
			setVal(rPr.CreateElement("w:rStyle"), styleHyperlink)
		}
		if f.bold {
			rPr.CreateElement("w:b")
		}
		if f.italic {
			rPr.CreateElement("w:i")
		}
		if f.underline {
			setVal(rPr.CreateElement("w:u"), "single")
		}
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

// hyperlink adds an external link to p and returns the element its runs
// belong in.
func (b *body) hyperlink(p *etree.Element, href string) *etree.Element {
	id := fmt.Sprintf("rId%d", len(b.links)+2)
	b.links = append(b.links, relationship{id: id, target: b.resolve(href)})

	h := p.CreateElement("w:hyperlink")
	h.CreateAttr("r:id", id)
	return h
}

// resolve makes ref absolute against the document's source page.
func (b *body) resolve(ref string) string {
	if b.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.base.ResolveReference(u).String()
}

// tableRows returns the cells of every row of a table, looking through
// row groups.
func tableRows(table *html.Node) [][]*html.Node {
	var rows [][]*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.DataAtom {
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			case atom.Tr:
				var cells []*html.Node
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.DataAtom == atom.Td || cell.DataAtom == atom.Th {
						cells = append(cells, cell)
					}
				}
				rows = append(rows, cells)
			}
		}
	}
	walk(table)
	return rows
}

func colspan(cell *html.Node) int {
	n, err := strconv.Atoi(attr(cell, "colspan"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Table, atom.Div, atom.Main, atom.Section,
		atom.Article, atom.Header, atom.Footer, atom.Blockquote, atom.Hr:
		return true
	}
	return false
}

// hasText reports whether nodes would render anything visible.
func hasText(nodes []*html.Node) bool {
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) != "":
			return true
		case n.Type == html.ElementNode:
			return true
		}
	}
	return false
}

// collapseSpace replaces runs of whitespace with a single space.
// Whitespace-only text collapses to nothing.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	text := strings.Join(fields, " ")
	if isSpace(s[0]) {
		text = " " + text
	}
	if isSpace(s[len(s)-1]) {
		text += " "
	}
	return text
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
