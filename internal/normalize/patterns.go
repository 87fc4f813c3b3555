package normalize

import (
	"regexp"
	"time"
)

// Pattern and keyword tables for field extraction. All are read-only,
// process-wide constants; extractors scan in the declared order and the
// first (or, where noted, last) match wins.

// Invoice patterns. Italian conventions first, English second.
var (
	// Legal-entity suffixes and known header keywords; suppliers appear
	// near the top of the document.
	reSupplierIndicator = regexp.MustCompile(`(?i)(s\.r\.l\.|spa|ltd|inc|marilab|company|sede)`)

	reInvoiceNumberKeyword = regexp.MustCompile(`(?i)(numero documento|fattura n|invoice number|n\.)`)
	reDigitRun             = regexp.MustCompile(`\d{3,}`)

	reIssueDateKeyword = regexp.MustCompile(`(?i)(data documento|issue date)`)
	reDueDateKeyword   = regexp.MustCompile(`(?i)(scadenza|due date)`)
	reInvoiceDate      = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)

	reTotalKeyword = regexp.MustCompile(`(?i)(totale|invoice total|importo)`)
	reAmount       = regexp.MustCompile(`([€$])?\s?(\d[\d.,]*)`)
)

// supplierScanWindow caps the supplier search to the document top.
const supplierScanWindow = 5

// defaultCurrency is used when the total line carries no currency symbol.
const defaultCurrency = "EUR"

// requiredInvoiceFields drive coverage scoring and warning order. Due date
// and line items are deliberately not required.
var requiredInvoiceFields = []string{
	"invoice_number",
	"issue_date",
	"supplier_name",
	"invoice_total",
}

// Prescription patterns.
var (
	reRxNumericDate = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	reRxTextualDate = regexp.MustCompile(`(\d{1,2})\s+([a-zA-Z]+)\s+(\d{2,4})`)

	rePrescriberID = regexp.MustCompile(`[A-Z0-9]{11,16}`)

	dosagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*(mg|ml|g|µg)`),
		regexp.MustCompile(`(?i)dose\s*:?\s*(\d+[.,]?\d*)\s*(mg|ml|g|µg)`),
	}

	frequencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*volte\s*al\s*giorno`),
		regexp.MustCompile(`(?i)(\d+)\s*volte\s*al\s*d[ìi]`),
		regexp.MustCompile(`(?i)(\d+)\s*x\s*die`),
		regexp.MustCompile(`(?i)ogni\s*(\d+)\s*ore`),
		regexp.MustCompile(`(?i)(\d+)\s*[cp]\s*al\s*d[ìi]`),
	}

	durationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)per\s*(\d+)\s*giorni`),
		regexp.MustCompile(`(?i)(\d+)\s*giorni`),
		regexp.MustCompile(`(?i)durata\s*:?\s*(\d+)\s*g`),
	}

	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)qta\s*:?\s*(\d+)`),
		regexp.MustCompile(`(?i)n\.\s*(\d+)`),
		regexp.MustCompile(`(?i)quantit[àa]\s*:?\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*(compresse|cp|fiale|fl|ml|g|mg|µg)`),
	}
)

// rxDateKeyword gates the prescription date search.
const rxDateKeyword = "data"

var prescriberNameTokens = []string{"dott", "dr.", "medico", "farmacista"}

var prescriberIDTokens = []string{"codice fiscale", "cf:", "id"}

// medicationFormTokens mark a line as a new medication header even when it
// is not fully upper-case.
var medicationFormTokens = []string{"compresse", "capsule", "fiale", "crema", "pomata"}

// italianMonths maps lowercase Italian month names for the textual date
// grammar ("15 marzo 2024").
var italianMonths = map[string]time.Month{
	"gennaio":   time.January,
	"febbraio":  time.February,
	"marzo":     time.March,
	"aprile":    time.April,
	"maggio":    time.May,
	"giugno":    time.June,
	"luglio":    time.July,
	"agosto":    time.August,
	"settembre": time.September,
	"ottobre":   time.October,
	"novembre":  time.November,
	"dicembre":  time.December,
}
