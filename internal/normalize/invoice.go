// Package normalize turns flattened OCR output into structured invoice and
// prescription records, annotated with a quality score and warnings.
//
// Extractors are stateless and scan the line sequence in a defined order;
// per field, either the first or the last match wins and there is no
// backtracking. That tie-breaking policy is part of the observable contract.
package normalize

import (
	"fmt"
	"regexp"

	"github.com/lucaferrario/docnorm/internal/blockgraph"
	"github.com/lucaferrario/docnorm/internal/entity"
)

// fieldMatch is one extracted value with the confidence of its source line.
type fieldMatch struct {
	value      string
	confidence float64
}

// totalMatch additionally carries the detected currency.
type totalMatch struct {
	amount     float64
	currency   string
	confidence float64
}

// ParseInvoice assembles a normalized invoice from the block graph. The
// record is built in one step and returned only after all extractors have
// run; a structural fault in the table graph is the only error path, OCR
// content noise never fails the parse.
func ParseInvoice(doc *blockgraph.Document) (entity.Invoice, error) {
	lines := doc.Lines()

	var (
		confidences []float64
		found       int
		inv         entity.Invoice
	)

	if m := findSupplierName(lines); m != nil {
		inv.SupplierName = &m.value
		confidences = append(confidences, m.confidence)
		found++
	}

	if m := findInvoiceNumber(lines); m != nil {
		inv.InvoiceNumber = &m.value
		confidences = append(confidences, m.confidence)
		found++
	}

	if m := findDate(lines, reIssueDateKeyword, true); m != nil {
		inv.IssueDate = &m.value
		confidences = append(confidences, m.confidence)
		found++
	}

	// Due date is keyword-gated only; its absence is not warning-worthy.
	if m := findDate(lines, reDueDateKeyword, false); m != nil {
		inv.DueDate = &m.value
		confidences = append(confidences, m.confidence)
	}

	if m := findTotal(lines); m != nil {
		inv.InvoiceTotal = &m.amount
		inv.Currency = &m.currency
		confidences = append(confidences, m.confidence)
		found++
	}

	rows, err := doc.TableRows()
	if err != nil {
		return entity.Invoice{}, err
	}
	inv.LineItems = lineItems(rows)

	inv.QualityScore = WeightedQualityScore(confidences, found, len(requiredInvoiceFields))
	inv.Warnings = invoiceWarnings(&inv, found)
	return inv, nil
}

// findSupplierName checks the first lines only: suppliers appear near the
// document top. First match wins.
func findSupplierName(lines []blockgraph.Line) *fieldMatch {
	top := lines
	if len(top) > supplierScanWindow {
		top = top[:supplierScanWindow]
	}
	for _, ln := range top {
		if reSupplierIndicator.MatchString(ln.Text) {
			return &fieldMatch{value: ln.Text, confidence: ln.Confidence}
		}
	}
	return nil
}

// findInvoiceNumber returns the digit run (>=3 digits) from the first line
// carrying an invoice-number keyword phrase.
func findInvoiceNumber(lines []blockgraph.Line) *fieldMatch {
	for _, ln := range lines {
		if !reInvoiceNumberKeyword.MatchString(ln.Text) {
			continue
		}
		if run := reDigitRun.FindString(ln.Text); run != "" {
			return &fieldMatch{value: run, confidence: ln.Confidence}
		}
	}
	return nil
}

// findDate scans keyword-gated lines for a D/M/Y date. With fallback, a
// second ungated pass returns the first parseable date anywhere. Both paths
// normalize to ISO; 2-digit years are kept literal on either path.
func findDate(lines []blockgraph.Line, keyword *regexp.Regexp, fallback bool) *fieldMatch {
	for _, ln := range lines {
		if !keyword.MatchString(ln.Text) {
			continue
		}
		if iso, ok := parseNumericDate(reInvoiceDate, ln.Text, false); ok {
			return &fieldMatch{value: iso, confidence: ln.Confidence}
		}
	}
	if !fallback {
		return nil
	}
	for _, ln := range lines {
		if iso, ok := parseNumericDate(reInvoiceDate, ln.Text, false); ok {
			return &fieldMatch{value: iso, confidence: ln.Confidence}
		}
	}
	return nil
}

// findTotal scans in reverse: totals are bottom-anchored. A line qualifies
// only when the keyword is present and its numeric literal parses; currency
// defaults to EUR when no symbol precedes the amount.
func findTotal(lines []blockgraph.Line) *totalMatch {
	for i := len(lines) - 1; i >= 0; i-- {
		ln := lines[i]
		if !reTotalKeyword.MatchString(ln.Text) {
			continue
		}
		m := reAmount.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		amount := ParseAmount(m[2])
		if amount == nil {
			continue
		}
		currency := m[1]
		if currency == "" {
			currency = defaultCurrency
		}
		return &totalMatch{amount: *amount, currency: currency, confidence: ln.Confidence}
	}
	return nil
}

// lineItems keeps only rows with at least 4 populated columns, an empirical
// floor against partial or garbage rows. Columns map 1..4 to description,
// quantity, unit price and total.
func lineItems(rows []blockgraph.TableRow) []entity.InvoiceLineItem {
	items := make([]entity.InvoiceLineItem, 0, len(rows))
	for _, row := range rows {
		if row.Cols() < 4 {
			continue
		}
		items = append(items, entity.InvoiceLineItem{
			Description: row.Cells[1],
			Qty:         ParseAmount(row.Cells[2]),
			UnitPrice:   ParseAmount(row.Cells[3]),
			Total:       ParseAmount(row.Cells[4]),
		})
	}
	return items
}

// invoiceWarnings emits one warning per missing required field, in
// required-field order, plus a generic one when coverage is incomplete.
func invoiceWarnings(inv *entity.Invoice, found int) []string {
	present := map[string]bool{
		"invoice_number": inv.InvoiceNumber != nil,
		"issue_date":     inv.IssueDate != nil,
		"supplier_name":  inv.SupplierName != nil,
		"invoice_total":  inv.InvoiceTotal != nil,
	}
	warnings := make([]string, 0, len(requiredInvoiceFields)+1)
	for _, f := range requiredInvoiceFields {
		if !present[f] {
			warnings = append(warnings, fmt.Sprintf("Missing required field: %s", f))
		}
	}
	if found < len(requiredInvoiceFields) {
		warnings = append(warnings, "Some key fields not extracted with high confidence")
	}
	return warnings
}
