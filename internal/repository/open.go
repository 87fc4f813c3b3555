package repository

import (
	"context"
	"log/slog"

	"github.com/lucaferrario/docnorm/internal/common"
)

// OpenDocumentRepository picks the archive backend from configuration:
// Postgres when a DSN is set, the local SQLite file otherwise. The returned
// closer releases whichever backend was opened.
func OpenDocumentRepository(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (DocumentRepository, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.DSN == "" {
		repo, err := OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}

	pool, err := OpenPool(ctx, Config{
		DSN:             cfg.DSN,
		MaxConns:        cfg.MaxConns,
		MinConns:        cfg.MinConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
		DialTimeout:     cfg.DialTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := HealthCheck(ctx, pool, cfg.DialTimeout, logger); err != nil {
		pool.Close()
		return nil, nil, err
	}
	repo := NewPostgresDocumentRepository(pool, logger)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return repo, pool.Close, nil
}
