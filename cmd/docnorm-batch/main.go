package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/lucaferrario/docnorm/internal/common"
	"github.com/lucaferrario/docnorm/internal/export"
	"github.com/lucaferrario/docnorm/internal/ingest"
	"github.com/lucaferrario/docnorm/internal/pipeline"
	"github.com/lucaferrario/docnorm/internal/repository"
	"github.com/lucaferrario/docnorm/internal/textract"
)

func main() {
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	docsRepo, closeRepo, err := repository.OpenDocumentRepository(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open document archive", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	analyzer, err := textract.NewClient(ctx, textract.Config{
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Region:          cfg.AWS.Region,
		MaxRetries:      cfg.Retry.MaxRetries,
		BaseBackoff:     cfg.Retry.BaseBackoff,
	}, logger)
	if err != nil {
		logger.Error("build textract client", "error", err)
		os.Exit(1)
	}

	jsonWriter := export.NewJSONWriter(cfg.Paths.OutDir, logger)
	proc := pipeline.NewProcessor(analyzer, docsRepo, jsonWriter, logger)
	walker := ingest.NewWalker(proc, logger)

	results, stats, err := walker.Run(ctx, cfg.Paths.DataDir)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("batch run finished",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	for _, r := range results {
		if r.Err != "" {
			logger.Warn("file failed", "path", r.Path, "error", r.Err)
		}
	}

	// Workbook of everything archived so far.
	xlsx, err := export.NewService(docsRepo, logger).ExportInvoicesXLSX(ctx, 1000)
	if err != nil {
		logger.Error("invoice export failed", "error", err)
		os.Exit(1)
	}
	xlsxPath := filepath.Join(cfg.Paths.OutDir, "invoices.xlsx")
	if err := os.WriteFile(xlsxPath, xlsx, 0o644); err != nil {
		logger.Error("write invoice workbook", "path", xlsxPath, "error", err)
		os.Exit(1)
	}
	logger.Info("invoice workbook written", "path", xlsxPath, "bytes", len(xlsx))
}
