// Package textract submits document bytes to AWS Textract and converts the
// response into the internal block graph. Retry orchestration around the
// external call lives here, not in the core.
package textract

import (
	"context"

	"github.com/lucaferrario/docnorm/internal/blockgraph"
)

// DocumentAnalyzer is Stage 1: document bytes -> block graph. The pipeline
// depends on this interface so tests can substitute canned graphs.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, fileBytes []byte) (*blockgraph.Document, error)
}
