package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/superm123/SnapSpend/internal/models"
)

// minDescriptionLen rejects residual text too short to describe anything;
// such lines are noise, not zero-description transactions.
const minDescriptionLen = 2

// descStripPattern removes punctuation from residual text. Hyphens and
// slashes survive because merchants and references use them.
var descStripPattern = regexp.MustCompile(`[^a-zA-Z0-9 /-]+`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// StatementParser converts extracted bank statement text into an ordered
// list of candidate transactions. It is a pure text-to-transactions
// function: the decision to retry with OCR-derived text when the text
// layer yields nothing belongs to the caller.
type StatementParser struct {
	// Today supplies the fallback date token for lines that carry an
	// amount but no date. Passing it explicitly keeps Parse deterministic.
	Today time.Time
}

// Parse splits text into lines and emits candidates in document order.
func (p *StatementParser) Parse(text string) []models.CandidateTransaction {
	var out []models.CandidateTransaction
	id := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !IncludeLine(line) {
			continue
		}

		tok, ok := RecognizeLine(line)
		if !ok {
			continue
		}

		desc := CleanDescription(tok.Residual)
		if len(desc) < minDescriptionLen {
			continue
		}

		date := tok.Date
		if date == "" {
			date = p.Today.Format("02/01/2006")
		}

		txType := models.Credit
		if tok.Negative {
			txType = models.Debit
		}

		out = append(out, models.CandidateTransaction{
			ID:          fmt.Sprintf("temp-%d", id),
			Date:        date,
			Description: desc,
			Amount:      tok.Amount,
			Type:        txType,
		})
		id++
	}

	return out
}

// CleanDescription strips punctuation (keeping "-" and "/") and collapses
// runs of whitespace.
func CleanDescription(s string) string {
	s = descStripPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
