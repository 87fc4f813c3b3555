package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lucaferrario/docnorm/internal/common"
	"github.com/lucaferrario/docnorm/internal/export"
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

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runanalyze <file-path>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

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

	proc := pipeline.NewProcessor(analyzer, docsRepo, export.NewJSONWriter(cfg.Paths.OutDir, logger), logger)

	start := time.Now()
	res, err := proc.ProcessFile(ctx, path)
	if err != nil {
		logger.Error("normalization failed", "path", path, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("normalization OK",
		"doc_id", res.DocID,
		"doc_type", res.DocType,
		"quality_score", res.QualityScore,
		"warnings", res.Warnings,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println(res.OutputPath)
}
