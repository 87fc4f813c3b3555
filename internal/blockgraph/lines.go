package blockgraph

import "strings"

// Line is one detected text line with its recognition confidence (0-100).
type Line struct {
	Text       string
	Confidence float64
}

// Lines flattens all LINE blocks into an ordered sequence, in graph emission
// order. Lines whose text is empty after trimming are retained; callers
// decide relevance. Missing confidence defaults to 0.
func (d *Document) Lines() []Line {
	var lines []Line
	for _, b := range d.Blocks {
		if b.BlockType != BlockTypeLine {
			continue
		}
		lines = append(lines, Line{
			Text:       strings.TrimSpace(b.Text),
			Confidence: b.Confidence,
		})
	}
	return lines
}
