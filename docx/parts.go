package docx

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relOfficeDocument = nsRelationships + "/officeDocument"
	relStyles         = nsRelationships + "/styles"
	relHyperlink      = nsRelationships + "/hyperlink"
)

const (
	styleListBullet = "ListBullet"
	styleListNumber = "ListNumber"
	styleHyperlink  = "Hyperlink"
	styleTableGrid  = "TableGrid"
)

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func contentTypes() *etree.Document {
	doc := newXMLDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	def := func(ext, typ string) {
		el := types.CreateElement("Default")
		el.CreateAttr("Extension", ext)
		el.CreateAttr("ContentType", typ)
	}
	override := func(part, typ string) {
		el := types.CreateElement("Override")
		el.CreateAttr("PartName", part)
		el.CreateAttr("ContentType", typ)
	}

	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	override("/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")
	override("/word/styles.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml")
	return doc
}

func packageRels() *etree.Document {
	doc := newXMLDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPackageRels)
	addRelationship(rels, "rId1", relOfficeDocument, "word/document.xml", false)
	return doc
}

func addRelationship(rels *etree.Element, id, typ, target string, external bool) {
	el := rels.CreateElement("Relationship")
	el.CreateAttr("Id", id)
	el.CreateAttr("Type", typ)
	el.CreateAttr("Target", target)
	if external {
		el.CreateAttr("TargetMode", "External")
	}
}

// styles declares the styles the body refers to.
func styles() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsMain)

	style := func(typ, id, name string, isDefault bool) *etree.Element {
		el := root.CreateElement("w:style")
		el.CreateAttr("w:type", typ)
		el.CreateAttr("w:styleId", id)
		if isDefault {
			el.CreateAttr("w:default", "1")
		}
		setVal(el.CreateElement("w:name"), name)
		return el
	}

	style("paragraph", "Normal", "Normal", true)
	for level := 1; level <= 6; level++ {
		el := style("paragraph", fmt.Sprintf("Heading%d", level), fmt.Sprintf("heading %d", level), false)
		setVal(el.CreateElement("w:basedOn"), "Normal")
		el.CreateElement("w:qFormat")
		rPr := el.CreateElement("w:rPr")
		rPr.CreateElement("w:b")
		setVal(rPr.CreateElement("w:sz"), fmt.Sprint(headingSize(level)))
	}
	setVal(style("paragraph", styleListBullet, "List Bullet", false).CreateElement("w:basedOn"), "Normal")
	setVal(style("paragraph", styleListNumber, "List Number", false).CreateElement("w:basedOn"), "Normal")

	link := style("character", styleHyperlink, "Hyperlink", false)
	rPr := link.CreateElement("w:rPr")
	setVal(rPr.CreateElement("w:color"), "0563C1")
	setVal(rPr.CreateElement("w:u"), "single")

	grid := style("table", styleTableGrid, "Table Grid", false)
	borders := grid.CreateElement("w:tblPr").CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "auto")
	}

	return doc
}

// headingSize returns the font size of a heading level in half-points.
func headingSize(level int) int {
	return []int{40, 32, 28, 26, 24, 22}[level-1]
}

func setVal(el *etree.Element, val string) {
	el.CreateAttr("w:val", val)
}
