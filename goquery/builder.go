package goquery

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/fwojciec/blocklib"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure BlockBuilder implements blocklib.BlockBuilder at compile time.
var _ blocklib.BlockBuilder = (*BlockBuilder)(nil)

// BlockBuilder renders blocks as authoring tables. The header row holds the
// block name with its variants in parentheses; every grid row follows as a
// table row. Rows shorter than the widest row get a colspan on their last
// cell so the table stays rectangular.
type BlockBuilder struct{}

// NewBlockBuilder creates a new BlockBuilder.
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// BuildBlock returns the table markup of t.
func (b *BlockBuilder) BuildBlock(t *blocklib.BlockTable) (string, error) {
	if t == nil || t.Name == "" {
		return "", blocklib.Errorf(blocklib.EINVALID, "block name required")
	}

	columns := 1
	for _, row := range t.Rows {
		columns = max(columns, len(row))
	}

	table := newElement(atom.Table)

	header := newElement(atom.Tr)
	th := newElement(atom.Th)
	th.AppendChild(&html.Node{Type: html.TextNode, Data: headerText(t)})
	setColspan(th, columns)
	header.AppendChild(th)
	table.AppendChild(header)

	for _, row := range t.Rows {
		tr := newElement(atom.Tr)
		for i, cell := range row {
			td := newElement(atom.Td)
			if err := fillCell(td, cell, t.TextCells); err != nil {
				return "", err
			}
			if i == len(row)-1 {
				setColspan(td, columns-len(row)+1)
			}
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, table); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func headerText(t *blocklib.BlockTable) string {
	if len(t.Variants) == 0 {
		return t.Name
	}
	return t.Name + " (" + strings.Join(t.Variants, ", ") + ")"
}

// fillCell appends the cell content to td, as a single text node when text
// is set and as parsed markup otherwise.
func fillCell(td *html.Node, cell string, text bool) error {
	if text {
		if cell != "" {
			td.AppendChild(&html.Node{Type: html.TextNode, Data: cell})
		}
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(cell), td)
	if err != nil {
		return blocklib.Errorf(blocklib.EINVALID, "failed to parse cell: %v", err)
	}
	for _, n := range nodes {
		td.AppendChild(n)
	}
	return nil
}

func setColspan(n *html.Node, span int) {
	if span <= 1 {
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(span)})
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}
