package blocklib

// BlockTable describes a block in the table form used by authoring documents.
type BlockTable struct {
	Name     string
	Variants []string

	// Rows holds the cell grid below the header row. Each cell is HTML
	// unless TextCells is set.
	Rows [][]string

	// TextCells marks every cell as plain text.
	TextCells bool
}

// Field is a single key/value pair of a metadata block.
type Field struct {
	Key   string
	Value string
}

// MetadataTable returns a key/value block with one row per field.
// Keys and values are plain text.
func MetadataTable(name string, fields ...Field) *BlockTable {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Key, f.Value})
	}
	return &BlockTable{Name: name, Rows: rows, TextCells: true}
}

// BlockBuilder renders blocks as canonical document markup.
type BlockBuilder interface {
	// BuildBlock returns the markup of the block table.
	BuildBlock(t *BlockTable) (string, error)
}
