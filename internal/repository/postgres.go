package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucaferrario/docnorm/constants"
)

// PostgresDocumentRepository archives records in a Postgres table.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresDocumentRepository(pool *pgxpool.Pool, logger *slog.Logger) *PostgresDocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDocumentRepository{pool: pool, logger: logger}
}

// Migrate creates the archive table when missing.
func (r *PostgresDocumentRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, documentsDDL); err != nil {
		return fmt.Errorf("migrate normalized_documents: %w", err)
	}
	return nil
}

func (r *PostgresDocumentRepository) Save(ctx context.Context, doc *NormalizedDocument) error {
	const q = `
		INSERT INTO normalized_documents
			(id, doc_type, source_path, payload, quality_score, warning_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, q,
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

func (r *PostgresDocumentRepository) ListByType(ctx context.Context, docType constants.DocType, limit int) ([]NormalizedDocument, error) {
	const q = `
		SELECT id, doc_type, source_path, payload, quality_score, warning_count, created_at
		FROM normalized_documents
		WHERE doc_type = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, q, string(docType), limit)
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
