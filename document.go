package blocklib

import "context"

// SectionBreak is the text of the paragraph that separates sections.
const SectionBreak = "---"

// LibraryDocument is a reconstructed block document ready for conversion.
type LibraryDocument struct {
	// Name is the block name.
	Name string

	// SourceURL is the page the first variant was harvested from. Converters
	// use it to resolve relative references.
	SourceURL string

	// Sections holds the inner markup of every reconstructed section in
	// variant order.
	Sections []string

	// HTML is the complete document with sections and break paragraphs.
	HTML string
}

// Reconstructor rebuilds reduced blocks as standalone documents.
type Reconstructor interface {
	// Reconstruct returns a document holding one section per variant.
	// With keepContext the sibling content of each block is preserved;
	// otherwise every section holds only the rebuilt block.
	// Returns ENOTFOUND if a variant's block element cannot be located.
	Reconstruct(block *ReducedBlock, keepContext bool) (*LibraryDocument, error)
}

// DocumentConverter converts library documents into an authoring format.
type DocumentConverter interface {
	// Convert returns the encoded document.
	Convert(ctx context.Context, sourceURL string, doc *LibraryDocument) ([]byte, error)

	// Extension returns the file extension of converted documents, including the dot.
	Extension() string
}
