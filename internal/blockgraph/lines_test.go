package blockgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinesFlattenInEmissionOrder(t *testing.T) {
	doc := &Document{Blocks: []Block{
		{ID: "p1", BlockType: "PAGE"},
		{ID: "l1", BlockType: BlockTypeLine, Text: "  ACME S.r.l.  ", Confidence: 99.1},
		{ID: "w1", BlockType: BlockTypeWord, Text: "ACME", Confidence: 99.5},
		{ID: "l2", BlockType: BlockTypeLine, Text: "   "},
		{ID: "l3", BlockType: BlockTypeLine, Text: "TOTALE 100", Confidence: 87.3},
	}}

	lines := doc.Lines()
	require.Len(t, lines, 3)
	require.Equal(t, Line{Text: "ACME S.r.l.", Confidence: 99.1}, lines[0])
	// Empty-after-trim lines are retained; callers decide relevance.
	require.Equal(t, Line{Text: "", Confidence: 0}, lines[1])
	require.Equal(t, Line{Text: "TOTALE 100", Confidence: 87.3}, lines[2])
}

func TestDocumentDecodesAnalyzeResponseJSON(t *testing.T) {
	raw := `{
		"Blocks": [
			{"Id": "a", "BlockType": "LINE", "Text": "Fattura n. 778899", "Confidence": 96.4},
			{"Id": "b", "BlockType": "TABLE", "Relationships": [{"Type": "CHILD", "Ids": ["c"]}]},
			{"Id": "c", "BlockType": "CELL", "RowIndex": 1, "ColumnIndex": 2}
		]
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.Blocks, 3)
	require.Equal(t, BlockTypeLine, doc.Blocks[0].BlockType)
	require.Equal(t, 96.4, doc.Blocks[0].Confidence)
	require.Equal(t, RelationshipTypeChild, doc.Blocks[1].Relationships[0].Type)
	require.Equal(t, []string{"c"}, doc.Blocks[1].Relationships[0].IDs)
	require.Equal(t, 1, doc.Blocks[2].RowIndex)
	require.Equal(t, 2, doc.Blocks[2].ColumnIndex)
}

func TestIndexResolvesEveryBlock(t *testing.T) {
	doc := &Document{Blocks: []Block{
		{ID: "a", BlockType: BlockTypeLine},
		{ID: "b", BlockType: BlockTypeWord},
	}}
	idx := doc.Index()
	require.Len(t, idx, 2)
	require.Same(t, &doc.Blocks[1], idx["b"])
}
