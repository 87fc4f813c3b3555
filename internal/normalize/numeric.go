package normalize

import (
	"strconv"
	"strings"
)

// ParseAmount parses a numeric literal tolerant of both Italian and English
// separator conventions: "1.234,56", "1,234.56", "123,45", "99.90", "1200".
// OCR noise that does not form a number yields nil, never an error.
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// Italian: dots are thousands, the comma is the decimal mark.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// English: commas are thousands.
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Comma as decimal separator.
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parsePositiveInt parses a digit run into a positive integer; zero and
// malformed values yield nil.
func parsePositiveInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
