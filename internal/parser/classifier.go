package parser

import (
	"regexp"
	"strings"
)

// excludePattern is a deny-list over known non-transaction vocabulary.
// Statement layouts vary too much for a positive grammar; any line not
// matching here that carries a recognizable amount is a candidate.
var excludePattern = regexp.MustCompile(`(?i)\b(?:` +
	`total|subtotal|` +
	`balance\s+(?:brought\s+|carried\s+)?forward|` +
	`opening\s+balance|closing\s+balance|` +
	`salary|gross\s+amount|net\s+amount|` +
	`tax|vat|minimum\s+payment` +
	`)\b`)

// excludeFirstTokens rejects header-ish lines by their leading word alone.
var excludeFirstTokens = map[string]bool{
	"total":     true,
	"subtotal":  true,
	"balance":   true,
	"summary":   true,
	"statement": true,
}

// IncludeLine reports whether a statement line may carry a transaction.
// Exclusion is keyword-driven and case-insensitive; everything else is in.
func IncludeLine(line string) bool {
	if excludePattern.MatchString(line) {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) > 0 && excludeFirstTokens[strings.ToLower(fields[0])] {
		return false
	}
	return true
}
