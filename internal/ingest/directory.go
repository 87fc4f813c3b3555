// Package ingest walks the data directory and feeds supported files to the
// processing pipeline.
package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lucaferrario/docnorm/constants"
	"github.com/lucaferrario/docnorm/internal/pipeline"
)

// FileProcessor is the behavior the walker depends on.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path string) (pipeline.Result, error)
}

// FileResult is the per-file ingest outcome.
type FileResult struct {
	Path   string
	Result pipeline.Result
	Err    string
}

// DirStats summarizes a directory run.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Skipped   uint32
	Failed    uint32
}

// Walker drives batch processing over a directory tree.
type Walker struct {
	proc   FileProcessor
	logger *slog.Logger
}

func NewWalker(proc FileProcessor, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{proc: proc, logger: logger}
}

// Run walks root, filters by the allowed extensions, skips hidden entries,
// and processes each matching file. Per-file failures are recorded and do
// not stop the walk.
func (w *Walker) Run(ctx context.Context, root string) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("data directory is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			w.logger.Warn("unsupported file type", "path", path, "ext", filepath.Ext(path))
			stats.Skipped++
			return nil
		}
		stats.Matched++

		res, err := w.proc.ProcessFile(ctx, path)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnknownDocType) {
				w.logger.Warn("no doc type route for file", "path", path)
				stats.Skipped++
				return nil
			}
			w.logger.Error("failed to process file", "path", path, "error", err)
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, FileResult{Path: path, Result: res})
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return results, stats, err
	}
	return results, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
