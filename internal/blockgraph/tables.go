package blockgraph

import (
	"fmt"
	"sort"
	"strings"
)

// TableRow is a reconstructed table row: column index (1-based) -> cell text.
type TableRow struct {
	Index int
	Cells map[int]string
}

// Cols returns the number of populated column entries.
func (r TableRow) Cols() int { return len(r.Cells) }

// TableRows walks every TABLE block and reconstructs its rows from CELL
// children, sorted by row index ascending. Rows of successive tables are
// appended in table emission order.
//
// Content faults (missing text, empty cells) degrade gracefully; an
// unresolvable relationship id is a structural fault and returns an error.
func (d *Document) TableRows() ([]TableRow, error) {
	idx := d.Index()

	var out []TableRow
	for i := range d.Blocks {
		table := &d.Blocks[i]
		if table.BlockType != BlockTypeTable {
			continue
		}

		rows := map[int]map[int]string{}
		for _, rel := range table.Relationships {
			if rel.Type != RelationshipTypeChild {
				continue
			}
			for _, id := range rel.IDs {
				cell, ok := idx[id]
				if !ok {
					return nil, fmt.Errorf("blockgraph: table %s references unknown block %q", table.ID, id)
				}
				if cell.BlockType != BlockTypeCell {
					continue
				}
				text, err := cellText(cell, idx)
				if err != nil {
					return nil, err
				}
				if rows[cell.RowIndex] == nil {
					rows[cell.RowIndex] = map[int]string{}
				}
				rows[cell.RowIndex][cell.ColumnIndex] = text
			}
		}

		indices := make([]int, 0, len(rows))
		for r := range rows {
			indices = append(indices, r)
		}
		sort.Ints(indices)
		for _, r := range indices {
			out = append(out, TableRow{Index: r, Cells: rows[r]})
		}
	}
	return out, nil
}

// cellText joins the cell's WORD and SELECTION_ELEMENT children with single
// spaces, trimmed.
func cellText(cell *Block, idx map[string]*Block) (string, error) {
	var parts []string
	for _, rel := range cell.Relationships {
		if rel.Type != RelationshipTypeChild {
			continue
		}
		for _, id := range rel.IDs {
			word, ok := idx[id]
			if !ok {
				return "", fmt.Errorf("blockgraph: cell %s references unknown block %q", cell.ID, id)
			}
			if word.BlockType == BlockTypeWord || word.BlockType == BlockTypeSelectionElement {
				parts = append(parts, word.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}
