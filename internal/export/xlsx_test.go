package export

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lucaferrario/docnorm/constants"
	"github.com/lucaferrario/docnorm/internal/entity"
	"github.com/lucaferrario/docnorm/internal/repository"
)

type stubRepo struct {
	docs []repository.NormalizedDocument
	err  error
}

func (s *stubRepo) Save(ctx context.Context, doc *repository.NormalizedDocument) error {
	s.docs = append(s.docs, *doc)
	return nil
}

func (s *stubRepo) ListByType(ctx context.Context, docType constants.DocType, limit int) ([]repository.NormalizedDocument, error) {
	return s.docs, s.err
}

func ptr[T any](v T) *T { return &v }

func archivedInvoice(t *testing.T, source string, inv entity.Invoice) repository.NormalizedDocument {
	t.Helper()
	payload, err := json.Marshal(inv)
	require.NoError(t, err)
	return repository.NormalizedDocument{
		ID:           uuid.New(),
		DocType:      constants.DocTypeInvoice,
		SourcePath:   source,
		Payload:      payload,
		QualityScore: inv.QualityScore,
		WarningCount: len(inv.Warnings),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestExportInvoicesXLSX(t *testing.T) {
	repo := &stubRepo{docs: []repository.NormalizedDocument{
		archivedInvoice(t, "data/invoice_a.pdf", entity.Invoice{
			InvoiceNumber: ptr("12345"),
			IssueDate:     ptr("2024-03-15"),
			SupplierName:  ptr("ACME S.r.l."),
			Currency:      ptr("EUR"),
			InvoiceTotal:  ptr(1234.56),
			LineItems:     []entity.InvoiceLineItem{{Description: "Consulenza"}},
			Warnings:      []string{},
			QualityScore:  0.98,
		}),
		archivedInvoice(t, "data/invoice_b.pdf", entity.Invoice{
			Warnings:     []string{"Missing required field: invoice_number", "Missing required field: issue_date"},
			QualityScore: 0.3,
		}),
	}}

	b, err := NewService(repo, nil).ExportInvoicesXLSX(context.Background(), 50)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(invoiceSheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "Invoice Number", header)

	cell := func(ref string) string {
		v, err := f.GetCellValue(invoiceSheet, ref)
		require.NoError(t, err)
		return v
	}
	require.Equal(t, "data/invoice_a.pdf", cell("A2"))
	require.Equal(t, "12345", cell("B2"))
	require.Equal(t, "2024-03-15", cell("C2"))
	require.Equal(t, "", cell("D2")) // no due date
	require.Equal(t, "ACME S.r.l.", cell("E2"))
	require.Equal(t, "EUR", cell("F2"))
	require.Equal(t, "1234.56", cell("G2"))
	require.Equal(t, "1", cell("H2"))
	require.Equal(t, "0.98", cell("I2"))
	require.Equal(t, "", cell("J2"))

	require.Equal(t, "data/invoice_b.pdf", cell("A3"))
	require.Equal(t, "", cell("B3"))
	require.Equal(t,
		"Missing required field: invoice_number; Missing required field: issue_date",
		cell("J3"))
}

func TestExportInvoicesXLSXSkipsUnreadablePayloads(t *testing.T) {
	repo := &stubRepo{docs: []repository.NormalizedDocument{
		{ID: uuid.New(), DocType: constants.DocTypeInvoice, SourcePath: "data/ok_invoice.pdf",
			Payload: mustJSON(t, entity.Invoice{Warnings: []string{}, QualityScore: 0.5})},
		{ID: uuid.New(), DocType: constants.DocTypeInvoice, SourcePath: "data/corrupt.pdf",
			Payload: []byte("{corrupt")},
	}}

	b, err := NewService(repo, nil).ExportInvoicesXLSX(context.Background(), 50)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(invoiceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + the readable record
	require.Equal(t, "data/ok_invoice.pdf", rows[1][0])
}

func TestExportInvoicesXLSXPropagatesRepositoryError(t *testing.T) {
	repo := &stubRepo{err: context.DeadlineExceeded}
	_, err := NewService(repo, nil).ExportInvoicesXLSX(context.Background(), 50)
	require.Error(t, err)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
