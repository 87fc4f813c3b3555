package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsoDateRejectsOverflowInsteadOfNormalizing(t *testing.T) {
	_, ok := isoDate(2024, 2, 31)
	require.False(t, ok)

	_, ok = isoDate(2023, 2, 29)
	require.False(t, ok)

	iso, ok := isoDate(2024, 2, 29)
	require.True(t, ok)
	require.Equal(t, "2024-02-29", iso)
}

func TestParseNumericDateCenturyInference(t *testing.T) {
	iso, ok := parseNumericDate(reRxNumericDate, "data 01/02/49", true)
	require.True(t, ok)
	require.Equal(t, "2049-02-01", iso)

	iso, ok = parseNumericDate(reRxNumericDate, "data 01/02/50", true)
	require.True(t, ok)
	require.Equal(t, "1950-02-01", iso)

	// Without inference the 2-digit year stays literal.
	iso, ok = parseNumericDate(reInvoiceDate, "15/03/24", false)
	require.True(t, ok)
	require.Equal(t, "0024-03-15", iso)
}

func TestParseNumericDateAcceptsDotSeparatorsForPrescriptions(t *testing.T) {
	iso, ok := parseNumericDate(reRxNumericDate, "15.03.2024", true)
	require.True(t, ok)
	require.Equal(t, "2024-03-15", iso)

	// The invoice grammar does not admit dots.
	_, ok = parseNumericDate(reInvoiceDate, "15.03.2024", false)
	require.False(t, ok)
}

func TestParseTextualDateItalianMonths(t *testing.T) {
	iso, ok := parseTextualDate("Roma, 1 gennaio 2025")
	require.True(t, ok)
	require.Equal(t, "2025-01-01", iso)

	_, ok = parseTextualDate("15 march 2024")
	require.False(t, ok)
}

func TestParsePrescriptionDatePrefersNumericGrammar(t *testing.T) {
	iso, ok := parsePrescriptionDate("data 15/03/24")
	require.True(t, ok)
	require.Equal(t, "2024-03-15", iso)

	iso, ok = parsePrescriptionDate("data 15 marzo 2024")
	require.True(t, ok)
	require.Equal(t, "2024-03-15", iso)

	_, ok = parsePrescriptionDate("data da definire")
	require.False(t, ok)
}
