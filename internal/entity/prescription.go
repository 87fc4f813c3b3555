package entity

// PrescriptionMedication is one medication block of a prescription.
type PrescriptionMedication struct {
	DrugName      *string `json:"drug_name"`
	DosageText    *string `json:"dosage_text"`    // e.g. "500 mg"
	FrequencyText *string `json:"frequency_text"` // canonical "N volte al giorno"
	DurationDays  *int    `json:"duration_days"`  // positive when set
	Quantity      *int    `json:"quantity"`
}

// Prescription is the normalized prescription record.
type Prescription struct {
	PrescriptionDate *string                  `json:"prescription_date"` // YYYY-MM-DD
	PrescriberName   *string                  `json:"prescriber_name"`
	PrescriberID     *string                  `json:"prescriber_id"` // 11-16 uppercase/digit chars
	Language         string                   `json:"language"`
	Medications      []PrescriptionMedication `json:"medications"`
	Notes            *string                  `json:"notes"`
	Warnings         []string                 `json:"warnings"`
	QualityScore     float64                  `json:"quality_score"` // [0,1]
}
