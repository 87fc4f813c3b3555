// Package repository archives normalized records. Postgres (pgx pool) is
// the primary store; a local SQLite file serves deployments without a
// database server.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lucaferrario/docnorm/constants"
)

// NormalizedDocument is one archived normalization result.
type NormalizedDocument struct {
	ID           uuid.UUID
	DocType      constants.DocType
	SourcePath   string
	Payload      json.RawMessage
	QualityScore float64
	WarningCount int
	CreatedAt    time.Time
}

// DocumentRepository is the behavior the pipeline depends on.
type DocumentRepository interface {
	// Save archives one normalized record.
	Save(ctx context.Context, doc *NormalizedDocument) error
	// ListByType returns the most recent records of one type.
	ListByType(ctx context.Context, docType constants.DocType, limit int) ([]NormalizedDocument, error)
}

const documentsDDL = `
CREATE TABLE IF NOT EXISTS normalized_documents (
	id            TEXT PRIMARY KEY,
	doc_type      TEXT NOT NULL,
	source_path   TEXT NOT NULL,
	payload       TEXT NOT NULL,
	quality_score REAL NOT NULL,
	warning_count INTEGER NOT NULL,
	created_at    TIMESTAMP NOT NULL
)`
