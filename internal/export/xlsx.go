package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lucaferrario/docnorm/constants"
	"github.com/lucaferrario/docnorm/internal/entity"
	"github.com/lucaferrario/docnorm/internal/repository"
)

// Service is a tiny façade over the document archive that produces XLSX
// bytes for invoice exports.
type Service struct {
	docsRepo repository.DocumentRepository
	logger   *slog.Logger
}

func NewService(docsRepo repository.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docsRepo: docsRepo, logger: logger}
}

const invoiceSheet = "Invoices"

var invoiceHeaders = []string{
	"Source",
	"Invoice Number",
	"Issue Date",
	"Due Date",
	"Supplier",
	"Currency",
	"Total",
	"Line Items",
	"Quality Score",
	"Warnings",
}

// ExportInvoicesXLSX returns a workbook of the most recent archived
// invoices, newest first.
func (s *Service) ExportInvoicesXLSX(ctx context.Context, limit int) ([]byte, error) {
	docs, err := s.docsRepo.ListByType(ctx, constants.DocTypeInvoice, limit)
	if err != nil {
		return nil, fmt.Errorf("query archived invoices: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, err
	}

	for i, h := range invoiceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(invoiceSheet, cell, h)
	}

	row := 2
	for _, doc := range docs {
		var inv entity.Invoice
		if err := json.Unmarshal(doc.Payload, &inv); err != nil {
			s.logger.Warn("skipping unreadable archived invoice", "id", doc.ID, "error", err)
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(invoiceSheet, cell, v)
		}

		write(1, doc.SourcePath)
		write(2, strOrEmpty(inv.InvoiceNumber))
		write(3, strOrEmpty(inv.IssueDate))
		write(4, strOrEmpty(inv.DueDate))
		write(5, strOrEmpty(inv.SupplierName))
		write(6, strOrEmpty(inv.Currency))
		if inv.InvoiceTotal != nil {
			write(7, *inv.InvoiceTotal)
		} else {
			write(7, "")
		}
		write(8, len(inv.LineItems))
		write(9, inv.QualityScore)
		write(10, strings.Join(inv.Warnings, "; "))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("invoice export ready", "rows", row-2, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
