package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucaferrario/docnorm/internal/pipeline"
)

type fakeProc struct {
	calls []string
	fail  map[string]error
}

func (f *fakeProc) ProcessFile(ctx context.Context, path string) (pipeline.Result, error) {
	f.calls = append(f.calls, filepath.Base(path))
	if err, ok := f.fail[filepath.Base(path)]; ok {
		return pipeline.Result{}, err
	}
	return pipeline.Result{QualityScore: 0.9}, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRunWalksFiltersAndContinuesOnFailure(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".archive", "invoice_old.pdf"))
	touch(t, filepath.Join(root, "invoice_1.pdf"))
	touch(t, filepath.Join(root, "invoice_bad.pdf"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "receipt.pdf"))

	proc := &fakeProc{fail: map[string]error{
		"invoice_bad.pdf": errors.New("analyze blew up"),
		"receipt.pdf":     fmt.Errorf("receipt.pdf: %w", pipeline.ErrUnknownDocType),
	}}
	walker := NewWalker(proc, nil)

	results, stats, err := walker.Run(context.Background(), root)
	require.NoError(t, err)

	// Hidden subtrees are pruned, non-document extensions never reach the
	// processor, and an unroutable file counts as skipped rather than failed.
	require.Equal(t, []string{"invoice_1.pdf", "invoice_bad.pdf", "receipt.pdf"}, proc.calls)
	require.Equal(t, uint32(3), stats.Matched)
	require.Equal(t, uint32(1), stats.Succeeded)
	require.Equal(t, uint32(2), stats.Skipped)
	require.Equal(t, uint32(1), stats.Failed)

	require.Len(t, results, 2)
	require.Equal(t, filepath.Join(root, "invoice_1.pdf"), results[0].Path)
	require.Empty(t, results[0].Err)
	require.Equal(t, 0.9, results[0].Result.QualityScore)
	require.Equal(t, filepath.Join(root, "invoice_bad.pdf"), results[1].Path)
	require.Equal(t, "analyze blew up", results[1].Err)
}

func TestRunCaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "invoice_2.PDF"))
	touch(t, filepath.Join(root, "invoice_3.Jpeg"))

	proc := &fakeProc{}
	_, stats, err := NewWalker(proc, nil).Run(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, uint32(2), stats.Matched)
	require.Equal(t, uint32(2), stats.Succeeded)
}

func TestRunRequiresRoot(t *testing.T) {
	_, _, err := NewWalker(&fakeProc{}, nil).Run(context.Background(), "   ")
	require.Error(t, err)
}

func TestRunMissingRootReportsWalkError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nope")
	results, stats, err := NewWalker(&fakeProc{}, nil).Run(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, uint32(1), stats.Failed)
	require.Len(t, results, 1)
	require.NotEmpty(t, results[0].Err)
}
