package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lucaferrario/docnorm/constants"
)

// SQLiteDocumentRepository is the zero-dependency local archive used when no
// DB_URL is configured.
type SQLiteDocumentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and bootstraps) the local archive file.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteDocumentRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, documentsDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite archive: %w", err)
	}
	logger.Info("sqlite archive ready", "path", path)
	return &SQLiteDocumentRepository{db: db, logger: logger}, nil
}

func (r *SQLiteDocumentRepository) Close() error { return r.db.Close() }

func (r *SQLiteDocumentRepository) Save(ctx context.Context, doc *NormalizedDocument) error {
	const q = `
		INSERT INTO normalized_documents
			(id, doc_type, source_path, payload, quality_score, warning_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		doc.ID.String(), string(doc.DocType), doc.SourcePath,
		string(doc.Payload), doc.QualityScore, doc.WarningCount, doc.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to save normalized document", "id", doc.ID, "error", err)
		return fmt.Errorf("save normalized document: %w", err)
	}
	r.logger.Debug("normalized document saved", "id", doc.ID, "doc_type", doc.DocType)
	return nil
}

func (r *SQLiteDocumentRepository) ListByType(ctx context.Context, docType constants.DocType, limit int) ([]NormalizedDocument, error) {
	const q = `
		SELECT id, doc_type, source_path, payload, quality_score, warning_count, created_at
		FROM normalized_documents
		WHERE doc_type = ?
		ORDER BY created_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, string(docType), limit)
	if err != nil {
		return nil, fmt.Errorf("list normalized documents: %w", err)
	}
	defer rows.Close()

	var out []NormalizedDocument
	for rows.Next() {
		var (
			d       NormalizedDocument
			id      string
			dt      string
			payload string
		)
		if err := rows.Scan(&id, &dt, &d.SourcePath, &payload, &d.QualityScore, &d.WarningCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan normalized document: %w", err)
		}
		parsed, err := parseDocumentID(id)
		if err != nil {
			return nil, err
		}
		d.ID = parsed
		d.DocType = constants.DocType(dt)
		d.Payload = []byte(payload)
		out = append(out, d)
	}
	return out, rows.Err()
}

func parseDocumentID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse document id %q: %w", id, err)
	}
	return parsed, nil
}
