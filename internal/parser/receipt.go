package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/superm123/SnapSpend/internal/models"
)

// CategorySuggester resolves a category for a line-item description,
// typically by looking up a previously saved expense with the same text.
// Suggestion is best-effort; a miss leaves the item's category unset.
type CategorySuggester interface {
	SuggestCategory(description string) (int64, bool)
}

var (
	// Amount at end of line, tolerating one stray trailing character that
	// OCR sometimes appends after the number.
	receiptItemPattern = regexp.MustCompile(`^(.*?)\s+([£$€]?\s?\d+[.,]\d{2})[^\d\s]?\s*$`)

	receiptTotalLine = regexp.MustCompile(`(?i)\b(?:total|subtotal|balance\s+due|amount\s+due|grand\s+total)\b`)

	// Looser grammar for the single-total fallback.
	receiptTotalAmount = regexp.MustCompile(`(?i)(?:total|amount\s+due|balance)\D{0,10}?(\d+[.,]\d{2})`)

	merchantBoilerplate = regexp.MustCompile(`(?i)^(?:\d|receipt|invoice|tax|vat|date|time|till|cashier|server|table)`)
)

const (
	merchantScanLines = 5
	merchantMinLen    = 4
	merchantMaxLen    = 49
)

// ReceiptParser extracts a merchant name and itemized entries from the OCR
// text of a single receipt image.
type ReceiptParser struct {
	Suggest CategorySuggester // optional
}

// Parse never fails: an unreadable receipt comes back with an empty
// merchant and no items, which the user corrects by hand.
func (p *ReceiptParser) Parse(text string) models.Receipt {
	lines := nonBlankLines(text)

	rec := models.Receipt{
		MerchantName: extractMerchant(lines),
		Items:        p.extractItems(lines),
	}

	// Nothing itemizable: fall back to a single total entry.
	if len(rec.Items) == 0 {
		if amt, ok := extractReceiptTotal(lines); ok {
			rec.Items = append(rec.Items, models.CandidateTransaction{
				ID:          "temp-0",
				Description: "Total",
				Amount:      amt,
			})
		}
	}

	if p.Suggest != nil {
		for i := range rec.Items {
			if id, ok := p.Suggest.SuggestCategory(rec.Items[i].Description); ok {
				rec.Items[i].CategoryID = id
			}
		}
	}

	return rec
}

// extractMerchant scans the top of the receipt for the first line that
// looks like a store name. Returns "" when nothing qualifies so the caller
// can keep any previously entered value.
func extractMerchant(lines []string) string {
	n := len(lines)
	if n > merchantScanLines {
		n = merchantScanLines
	}
	for _, line := range lines[:n] {
		if len(line) < merchantMinLen || len(line) > merchantMaxLen {
			continue
		}
		if merchantBoilerplate.MatchString(line) {
			continue
		}
		if loc := datePatternShort.FindStringIndex(line); loc != nil && loc[0] == 0 {
			continue
		}
		return line
	}
	return ""
}

func (p *ReceiptParser) extractItems(lines []string) []models.CandidateTransaction {
	var items []models.CandidateTransaction
	id := 0

	for _, line := range lines {
		if receiptTotalLine.MatchString(line) {
			continue
		}
		m := receiptItemPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amt, ok := parseReceiptAmount(m[2])
		if !ok {
			continue
		}
		items = append(items, models.CandidateTransaction{
			ID:          fmt.Sprintf("temp-%d", id),
			Description: strings.TrimSpace(m[1]),
			Amount:      amt,
		})
		id++
	}

	return items
}

func extractReceiptTotal(lines []string) (float64, bool) {
	for _, line := range lines {
		if m := receiptTotalAmount.FindStringSubmatch(line); m != nil {
			if amt, ok := parseReceiptAmount(m[1]); ok {
				return amt, true
			}
		}
	}
	return 0, false
}

// parseReceiptAmount strips currency decoration and rejects non-positive
// or non-finite values.
func parseReceiptAmount(s string) (float64, bool) {
	s = strings.NewReplacer("£", "", "$", "", "€", "", " ", "", ",", ".").Replace(s)
	amt, err := strconv.ParseFloat(s, 64)
	if err != nil || amt <= 0 || math.IsNaN(amt) || math.IsInf(amt, 0) {
		return 0, false
	}
	return amt, true
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
