// Package pipeline coordinates the per-document stages: analyze (block
// graph), normalize (record), validate, then archive and export. Documents
// are independent; the processor holds no per-document state and may be
// invoked concurrently on distinct files.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lucaferrario/docnorm/constants"
	"github.com/lucaferrario/docnorm/internal/export"
	"github.com/lucaferrario/docnorm/internal/normalize"
	"github.com/lucaferrario/docnorm/internal/repository"
	"github.com/lucaferrario/docnorm/internal/schema"
	"github.com/lucaferrario/docnorm/internal/textract"
)

// ErrUnknownDocType marks files whose name matches no routing keyword.
var ErrUnknownDocType = errors.New("no document type keyword in filename")

// Result summarizes one processed document.
type Result struct {
	DocID        uuid.UUID
	DocType      constants.DocType
	QualityScore float64
	Warnings     int
	OutputPath   string
}

// Processor runs the full normalization pipeline for one file.
type Processor struct {
	Logger   *slog.Logger
	Analyzer textract.DocumentAnalyzer
	Docs     repository.DocumentRepository
	JSON     *export.JSONWriter
}

func NewProcessor(analyzer textract.DocumentAnalyzer, docs repository.DocumentRepository, jsonw *export.JSONWriter, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Analyzer: analyzer, Docs: docs, JSON: jsonw}
}

// ProcessFile routes the file by filename keyword, analyzes it, normalizes
// the block graph into a record, validates the serialized record against its
// schema, then archives it and writes the JSON artifact.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	docType := constants.DetectDocType(path)
	if docType == constants.DocTypeUnknown {
		return Result{}, fmt.Errorf("%s: %w", path, ErrUnknownDocType)
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}

	graph, err := p.Analyzer.AnalyzeDocument(ctx, fileBytes)
	if err != nil {
		p.Logger.Error("processor.analyze.failed", "path", path, "status", constants.JobStatusFailed, "error", err)
		return Result{}, err
	}
	p.Logger.Info("processor.analyze.ok", "path", path, "status", constants.JobStatusAnalyzed, "blocks", len(graph.Blocks))

	var (
		record       any
		recordSchema map[string]any
		artifact     string
		quality      float64
		warnings     int
	)
	switch docType {
	case constants.DocTypeInvoice:
		inv, err := normalize.ParseInvoice(graph)
		if err != nil {
			p.Logger.Error("processor.normalize.failed", "path", path, "status", constants.JobStatusFailed, "error", err)
			return Result{}, err
		}
		record, recordSchema, artifact = inv, schema.BuildInvoiceJSONSchema(), "invoice_a.json"
		quality, warnings = inv.QualityScore, len(inv.Warnings)
	case constants.DocTypePrescription:
		rx := normalize.ParsePrescription(graph)
		record, recordSchema, artifact = rx, schema.BuildPrescriptionJSONSchema(), "rx_it.json"
		quality, warnings = rx.QualityScore, len(rx.Warnings)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return Result{}, fmt.Errorf("marshal record: %w", err)
	}
	if err := schema.ValidateJSON(recordSchema, payload); err != nil {
		p.Logger.Error("processor.validate.failed", "path", path, "status", constants.JobStatusFailed, "error", err)
		return Result{}, err
	}

	outPath, err := p.JSON.Write(record, artifact)
	if err != nil {
		return Result{}, err
	}

	doc := &repository.NormalizedDocument{
		ID:           uuid.New(),
		DocType:      docType,
		SourcePath:   path,
		Payload:      payload,
		QualityScore: quality,
		WarningCount: warnings,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.Docs.Save(ctx, doc); err != nil {
		return Result{}, err
	}

	p.Logger.Info("processor.normalize.ok",
		"path", path,
		"status", constants.JobStatusNormalized,
		"doc_id", doc.ID,
		"doc_type", docType,
		"quality_score", quality,
		"warnings", warnings,
	)
	return Result{
		DocID:        doc.ID,
		DocType:      docType,
		QualityScore: quality,
		Warnings:     warnings,
		OutputPath:   outPath,
	}, nil
}
