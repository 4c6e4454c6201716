// Package blocklib builds a block library from a published Edge Delivery site.
// It harvests block markup from live pages, reduces every block to one
// representative sample per variant, rebuilds each variant as a standalone
// document, and writes the documents together with a library index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, docx/, excelize/).
package blocklib
