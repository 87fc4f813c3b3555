// Package blockgraph models the block structure returned by document
// analysis (lines, words, tables, cells) and flattens it into the simpler
// views the normalizers consume.
package blockgraph

// BlockType tags a node in the analysis output.
type BlockType string

const (
	BlockTypeLine             BlockType = "LINE"
	BlockTypeWord             BlockType = "WORD"
	BlockTypeTable            BlockType = "TABLE"
	BlockTypeCell             BlockType = "CELL"
	BlockTypeSelectionElement BlockType = "SELECTION_ELEMENT"
)

// RelationshipType tags an edge between blocks.
type RelationshipType string

const RelationshipTypeChild RelationshipType = "CHILD"

// Relationship links a block to a set of child block ids.
type Relationship struct {
	Type RelationshipType `json:"Type"`
	IDs  []string         `json:"Ids"`
}

// Block is one node of the analysis output. Field names and JSON tags
// round-trip the raw AnalyzeDocument response. Text, Confidence, RowIndex
// and ColumnIndex are all optional; absent values decode to zero values and
// are handled gracefully downstream.
type Block struct {
	ID            string         `json:"Id"`
	BlockType     BlockType      `json:"BlockType"`
	Text          string         `json:"Text,omitempty"`
	Confidence    float64        `json:"Confidence,omitempty"`
	RowIndex      int            `json:"RowIndex,omitempty"`
	ColumnIndex   int            `json:"ColumnIndex,omitempty"`
	Relationships []Relationship `json:"Relationships,omitempty"`
}

// Document is the full block collection for one analyzed document.
type Document struct {
	Blocks []Block `json:"Blocks"`
}

// Index returns an id -> block lookup for random access during table
// reconstruction. Pointers reference the document's own backing array.
func (d *Document) Index() map[string]*Block {
	idx := make(map[string]*Block, len(d.Blocks))
	for i := range d.Blocks {
		idx[d.Blocks[i].ID] = &d.Blocks[i]
	}
	return idx
}
