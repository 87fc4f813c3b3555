// Package schema declares the JSON-Schema contracts for the two normalized
// record shapes and validates serialized records against them before they
// leave the pipeline.
package schema

// isoDatePattern matches the normalized YYYY-MM-DD representation.
const isoDatePattern = `^\d{1,4}-\d{2}-\d{2}$`

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Optionals are nullable; quality_score is bounded [0,1].
func BuildInvoiceJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"invoice_number": nullable(map[string]any{"type": "string", "minLength": 3}),
			"issue_date":     nullable(map[string]any{"type": "string", "pattern": isoDatePattern}),
			"due_date":       nullable(map[string]any{"type": "string", "pattern": isoDatePattern}),
			"supplier_name":  nullable(map[string]any{"type": "string", "minLength": 1}),
			"currency":       nullable(map[string]any{"type": "string", "minLength": 1}),
			"invoice_total":  nullable(map[string]any{"type": "number"}),
			"line_items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"description": map[string]any{"type": "string"},
						"qty":         nullable(map[string]any{"type": "number"}),
						"unit_price":  nullable(map[string]any{"type": "number"}),
						"total":       nullable(map[string]any{"type": "number"}),
					},
					"required": []string{"description", "qty", "unit_price", "total"},
				},
			},
			"warnings":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"quality_score": scoreProp(),
		},
		"required": []string{
			"invoice_number", "issue_date", "due_date", "supplier_name",
			"currency", "invoice_total", "line_items", "warnings", "quality_score",
		},
	}
}

// BuildPrescriptionJSONSchema returns the prescription record contract.
func BuildPrescriptionJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"prescription_date": nullable(map[string]any{"type": "string", "pattern": isoDatePattern}),
			"prescriber_name":   nullable(map[string]any{"type": "string", "minLength": 1}),
			"prescriber_id":     nullable(map[string]any{"type": "string", "pattern": `^[A-Z0-9]{11,16}$`}),
			"language":          map[string]any{"type": "string", "minLength": 2, "maxLength": 2},
			"medications": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"drug_name":      nullable(map[string]any{"type": "string", "minLength": 1}),
						"dosage_text":    nullable(map[string]any{"type": "string"}),
						"frequency_text": nullable(map[string]any{"type": "string"}),
						"duration_days":  nullable(map[string]any{"type": "integer", "minimum": 1}),
						"quantity":       nullable(map[string]any{"type": "integer", "minimum": 1}),
					},
					"required": []string{"drug_name", "dosage_text", "frequency_text", "duration_days", "quantity"},
				},
			},
			"notes":         nullable(map[string]any{"type": "string"}),
			"warnings":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"quality_score": scoreProp(),
		},
		"required": []string{
			"prescription_date", "prescriber_name", "prescriber_id", "language",
			"medications", "notes", "warnings", "quality_score",
		},
	}
}

func nullable(prop map[string]any) map[string]any {
	return map[string]any{"oneOf": []any{prop, map[string]any{"type": "null"}}}
}

func scoreProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
}
