// Package export produces the output artifacts: per-document JSON files and
// an XLSX workbook of archived invoices.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// JSONWriter writes normalized records as indented UTF-8 JSON files into the
// output directory.
type JSONWriter struct {
	outDir string
	logger *slog.Logger
}

func NewJSONWriter(outDir string, logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{outDir: outDir, logger: logger}
}

// Write marshals data and saves it under filename in the output directory,
// creating the directory when missing. Returns the full path written.
func (w *JSONWriter) Write(data any, filename string) (string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	b, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	path := filepath.Join(w.outDir, filename)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("saved normalized data", "path", path, "bytes", len(b))
	return path, nil
}
