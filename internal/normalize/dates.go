package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoDate validates a day/month/year triple and renders it as YYYY-MM-DD.
// Overflowing days (e.g. 31/02) are rejected, not normalized.
func isoDate(year, month, day int) (string, bool) {
	if year < 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// parseNumericDate extracts the first D/M/Y occurrence of pattern from text,
// parsed as day/month/year. With inferCentury, 2-digit years below 50 map to
// the 2000s and the rest to the 1900s; otherwise the year is kept literal.
// Both the keyword-gated and the fallback invoice paths normalize to the
// same ISO representation.
func parseNumericDate(pattern *regexp.Regexp, text string, inferCentury bool) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if inferCentury && year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	return isoDate(year, month, day)
}

// parseTextualDate handles the "D <Italian month name> Y" grammar.
func parseTextualDate(text string) (string, bool) {
	m := reRxTextualDate.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	month, ok := italianMonths[strings.ToLower(m[2])]
	if !ok {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	return isoDate(year, int(month), day)
}

// parsePrescriptionDate tries the numeric grammar (with century inference)
// first, then the Italian month-name grammar.
func parsePrescriptionDate(text string) (string, bool) {
	if iso, ok := parseNumericDate(reRxNumericDate, text, true); ok {
		return iso, true
	}
	return parseTextualDate(text)
}
