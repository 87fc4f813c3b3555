package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucaferrario/docnorm/internal/entity"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func integer(n int) *int     { return &n }

func validInvoice() entity.Invoice {
	return entity.Invoice{
		InvoiceNumber: str("12345"),
		IssueDate:     str("2024-03-15"),
		DueDate:       nil,
		SupplierName:  str("ACME S.r.l."),
		Currency:      str("EUR"),
		InvoiceTotal:  num(1234.56),
		LineItems: []entity.InvoiceLineItem{
			{Description: "Consulenza", Qty: num(2), UnitPrice: num(50), Total: num(100)},
		},
		Warnings:     []string{},
		QualityScore: 0.98,
	}
}

func validPrescription() entity.Prescription {
	return entity.Prescription{
		PrescriptionDate: str("2024-03-15"),
		PrescriberName:   str("Dott. Mario Rossi"),
		PrescriberID:     str("RSSMRA80A01H501U"),
		Language:         "it",
		Medications: []entity.PrescriptionMedication{
			{DrugName: str("AMOXICILLINA"), DosageText: str("500 mg"), FrequencyText: str("2 volte al giorno"), DurationDays: integer(7), Quantity: integer(500)},
		},
		Notes:        nil,
		Warnings:     []string{},
		QualityScore: 1.0,
	}
}

func TestInvoiceRecordValidatesAgainstSchema(t *testing.T) {
	b, err := json.Marshal(validInvoice())
	require.NoError(t, err)
	require.NoError(t, ValidateJSON(BuildInvoiceJSONSchema(), b))
}

func TestPrescriptionRecordValidatesAgainstSchema(t *testing.T) {
	b, err := json.Marshal(validPrescription())
	require.NoError(t, err)
	require.NoError(t, ValidateJSON(BuildPrescriptionJSONSchema(), b))
}

func TestInvoiceSchemaRejectsOutOfRangeScore(t *testing.T) {
	inv := validInvoice()
	inv.QualityScore = 1.5
	b, err := json.Marshal(inv)
	require.NoError(t, err)
	require.Error(t, ValidateJSON(BuildInvoiceJSONSchema(), b))
}

func TestInvoiceSchemaRejectsMalformedDate(t *testing.T) {
	inv := validInvoice()
	inv.IssueDate = str("15/03/2024")
	b, err := json.Marshal(inv)
	require.NoError(t, err)
	require.Error(t, ValidateJSON(BuildInvoiceJSONSchema(), b))
}

func TestInvoiceSchemaRejectsUnknownProperties(t *testing.T) {
	b, err := json.Marshal(validInvoice())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	m["grand_total"] = 1
	b, err = json.Marshal(m)
	require.NoError(t, err)
	require.Error(t, ValidateJSON(BuildInvoiceJSONSchema(), b))
}

func TestPrescriptionSchemaRejectsLowercasePrescriberID(t *testing.T) {
	rx := validPrescription()
	rx.PrescriberID = str("rssmra80a01h501u")
	b, err := json.Marshal(rx)
	require.NoError(t, err)
	require.Error(t, ValidateJSON(BuildPrescriptionJSONSchema(), b))
}

func TestPrescriptionSchemaRejectsNonPositiveDuration(t *testing.T) {
	rx := validPrescription()
	rx.Medications[0].DurationDays = integer(0)
	b, err := json.Marshal(rx)
	require.NoError(t, err)
	require.Error(t, ValidateJSON(BuildPrescriptionJSONSchema(), b))
}

func TestNullableOptionalsAcceptNull(t *testing.T) {
	inv := validInvoice()
	inv.InvoiceNumber = nil
	inv.InvoiceTotal = nil
	b, err := json.Marshal(inv)
	require.NoError(t, err)
	require.NoError(t, ValidateJSON(BuildInvoiceJSONSchema(), b))
}

func TestValidateJSONRejectsGarbageInput(t *testing.T) {
	require.Error(t, ValidateJSON(BuildInvoiceJSONSchema(), []byte("{not json")))
}
