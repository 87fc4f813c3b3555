package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lucaferrario/docnorm/internal/blockgraph"
	"github.com/lucaferrario/docnorm/internal/entity"
)

// prescriptionLanguage is the fixed working language of the record;
// warnings are phrased in it.
const prescriptionLanguage = "it"

// ParsePrescription assembles a normalized prescription from the block
// graph. Content noise never fails the parse; the record is returned only
// once fully populated, scored and warned.
func ParsePrescription(doc *blockgraph.Document) entity.Prescription {
	lines := doc.Lines()

	rx := entity.Prescription{
		Language:    prescriptionLanguage,
		Medications: []entity.PrescriptionMedication{},
		Warnings:    []string{},
	}

	rx.Medications = groupMedications(lines)

	// The date search stops at the first line containing the keyword,
	// whether or not a date pattern matches inside it.
	for _, ln := range lines {
		if !strings.Contains(strings.ToLower(ln.Text), rxDateKeyword) {
			continue
		}
		if iso, ok := parsePrescriptionDate(ln.Text); ok {
			rx.PrescriptionDate = &iso
		}
		break
	}

	// Prescriber name and id: last matching line wins, no early break.
	for _, ln := range lines {
		lower := strings.ToLower(ln.Text)
		if containsAny(lower, prescriberNameTokens) {
			name := ln.Text
			rx.PrescriberName = &name
		}
		if containsAny(lower, prescriberIDTokens) {
			if id := rePrescriberID.FindString(ln.Text); id != "" {
				rx.PrescriberID = &id
			}
		}
	}

	if notes := collectNotes(lines, &rx); notes != "" {
		rx.Notes = &notes
	}

	if rx.PrescriptionDate == nil {
		rx.Warnings = append(rx.Warnings, "Data della prescrizione non trovata")
	}
	if rx.PrescriberName == nil {
		rx.Warnings = append(rx.Warnings, "Nome del prescrittore non trovato")
	}
	if len(rx.Medications) == 0 {
		rx.Warnings = append(rx.Warnings, "Nessun farmaco trovato nella prescrizione")
	}

	rx.QualityScore = RatioQualityScore(prescriptionSignals(&rx), 5)
	return rx
}

// groupMedications classifies each line as either a new medication header
// (fully upper-case, or carrying a pharmaceutical-form keyword) or a
// continuation of the current medication. Continuation lines fill dosage,
// frequency, duration and quantity; the first non-nil value per attribute
// wins, later lines never overwrite it.
func groupMedications(lines []blockgraph.Line) []entity.PrescriptionMedication {
	meds := []entity.PrescriptionMedication{}
	var cur *entity.PrescriptionMedication

	for _, ln := range lines {
		text := ln.Text
		if isMedicationHeader(text) {
			if cur != nil {
				meds = append(meds, *cur)
			}
			name := text
			cur = &entity.PrescriptionMedication{DrugName: &name}
			continue
		}
		if cur == nil {
			continue
		}
		if cur.DosageText == nil {
			cur.DosageText = parseDosage(text)
		}
		if cur.FrequencyText == nil {
			cur.FrequencyText = parseFrequency(text)
		}
		if cur.DurationDays == nil {
			cur.DurationDays = parseDuration(text)
		}
		if cur.Quantity == nil {
			cur.Quantity = parseQuantity(text)
		}
	}
	if cur != nil {
		meds = append(meds, *cur)
	}
	return meds
}

func isMedicationHeader(text string) bool {
	if isAllUpper(text) {
		return true
	}
	return containsAny(strings.ToLower(text), medicationFormTokens)
}

// isAllUpper reports whether the text has at least one cased letter and no
// lower-case ones, mirroring how an all-caps drug name prints on a
// prescription.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func parseDosage(text string) *string {
	for _, p := range dosagePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount := strings.ReplaceAll(m[1], ",", ".")
		dosage := fmt.Sprintf("%s %s", amount, strings.ToLower(m[2]))
		return &dosage
	}
	return nil
}

// parseFrequency normalizes every supported phrasing to the canonical
// "N volte al giorno".
func parseFrequency(text string) *string {
	for _, p := range frequencyPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		freq := fmt.Sprintf("%s volte al giorno", m[1])
		return &freq
	}
	return nil
}

func parseDuration(text string) *int {
	for _, p := range durationPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if n := parsePositiveInt(m[1]); n != nil {
				return n
			}
		}
	}
	return nil
}

func parseQuantity(text string) *int {
	for _, p := range quantityPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if n := parsePositiveInt(m[1]); n != nil {
				return n
			}
		}
	}
	return nil
}

// collectNotes gathers leftover lines: anything not equal to the extracted
// date's string form, the prescriber name, the prescriber id, or a
// medication header, space-joined in order.
func collectNotes(lines []blockgraph.Line, rx *entity.Prescription) string {
	headers := map[string]struct{}{}
	for _, m := range rx.Medications {
		if m.DrugName != nil {
			headers[*m.DrugName] = struct{}{}
		}
	}

	var notes []string
	for _, ln := range lines {
		text := ln.Text
		if text == "" {
			continue
		}
		if rx.PrescriptionDate != nil && text == *rx.PrescriptionDate {
			continue
		}
		if rx.PrescriberName != nil && text == *rx.PrescriberName {
			continue
		}
		if rx.PrescriberID != nil && text == *rx.PrescriberID {
			continue
		}
		if _, ok := headers[text]; ok {
			continue
		}
		notes = append(notes, text)
	}
	return strings.Join(notes, " ")
}

// prescriptionSignals counts the five coverage signals: date, prescriber
// name, prescriber id, at least one medication, and at least one medication
// with a drug name.
func prescriptionSignals(rx *entity.Prescription) int {
	signals := 0
	if rx.PrescriptionDate != nil {
		signals++
	}
	if rx.PrescriberName != nil {
		signals++
	}
	if rx.PrescriberID != nil {
		signals++
	}
	if len(rx.Medications) > 0 {
		signals++
	}
	for _, m := range rx.Medications {
		if m.DrugName != nil {
			signals++
			break
		}
	}
	return signals
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
