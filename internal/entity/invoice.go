package entity

// InvoiceLineItem is one reconstructed table row of an invoice.
// Numeric fields are nil when the cell text did not parse.
type InvoiceLineItem struct {
	Description string   `json:"description"`
	Qty         *float64 `json:"qty"`
	UnitPrice   *float64 `json:"unit_price"`
	Total       *float64 `json:"total"`
}

// Invoice is the normalized invoice record. Every optional field is either
// nil or satisfies its parse contract; serialization round-trips losslessly.
type Invoice struct {
	InvoiceNumber *string           `json:"invoice_number"`
	IssueDate     *string           `json:"issue_date"` // YYYY-MM-DD
	DueDate       *string           `json:"due_date"`   // YYYY-MM-DD
	SupplierName  *string           `json:"supplier_name"`
	Currency      *string           `json:"currency"` // ISO 4217 code or symbol
	InvoiceTotal  *float64          `json:"invoice_total"`
	LineItems     []InvoiceLineItem `json:"line_items"`
	Warnings      []string          `json:"warnings"`
	QualityScore  float64           `json:"quality_score"` // [0,1]
}
