package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stammy5/ampere-docproc/internal/entity"
)

var (
	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Invoice\s*#?\s*:?\s*([A-Z0-9\-]+)`),
		regexp.MustCompile(`(?i)INV\s*#?\s*:?\s*([A-Z0-9\-]+)`),
		regexp.MustCompile(`([A-Z0-9]{2,}-[0-9]{2,})`),
	}
	totalAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Total|Amount Due|Balance Due)[:\s]*\$?([0-9,]+\.?[0-9]*)`),
		regexp.MustCompile(`\$([0-9,]+\.?[0-9]*)`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), // MM/DD/YYYY or MM-DD-YYYY
		regexp.MustCompile(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})`),   // YYYY-MM-DD
	}
)

// PatternExtractor pulls invoice fields out of raw text with plain pattern
// matching. It is the cheap, offline alternative to the language-model path
// and shares its output shape.
type PatternExtractor struct{}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// ExtractInvoiceFields runs best-effort field extraction. Fields that cannot
// be located stay at their zero value; the call itself never fails.
func (p *PatternExtractor) ExtractInvoiceFields(text string) entity.InvoiceData {
	return entity.InvoiceData{
		InvoiceNumber: extractInvoiceNumber(text),
		VendorName:    extractVendorName(text),
		TotalAmount:   extractTotalAmount(text),
		IssueDate:     extractDate(text),
	}
}

func extractInvoiceNumber(text string) string {
	for _, re := range invoiceNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractVendorName takes the first non-blank line; real invoices usually
// open with the vendor letterhead.
func extractVendorName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// extractTotalAmount returns the highest amount mentioned near a total-like
// label, falling back to the highest dollar figure anywhere.
func extractTotalAmount(text string) float64 {
	for _, re := range totalAmountPatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		best := 0.0
		found := false
		for _, m := range matches {
			f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				continue
			}
			if !found || f > best {
				best = f
				found = true
			}
		}
		if found {
			return best
		}
	}
	return 0
}

func extractDate(text string) string {
	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
