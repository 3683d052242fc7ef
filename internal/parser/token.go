package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Date patterns, most specific first. Short day-month tokens are only
// considered when no full date matched, so "15/01" inside "15/01/2025"
// never wins over the full token.
var (
	// DD/MM/YYYY, DD.MM.YYYY, DD/MM/YY
	datePatternSlash = regexp.MustCompile(`\b\d{1,2}[./]\d{1,2}[./]\d{2,4}\b`)
	// DD Mon YYYY or DD Mon YY (e.g. "15 Jan 2024")
	datePatternText = regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4}\b`)
	// DD-Mon-YYYY
	datePatternDash = regexp.MustCompile(`(?i)\b\d{1,2}-(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*-\d{2,4}\b`)
	// DD Mon or DD/MM with no year
	datePatternShort = regexp.MustCompile(`(?i)\b\d{1,2}(?:\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*|/\d{1,2})\b`)
)

// amountPattern matches a monetary token: optional sign, optional currency
// symbol, digit groups with thousands separators, exactly two fractional
// digits. A dotted-grouped string like "1.234.56" still matches here and is
// rejected later by strconv, which is how malformed numbers skip the line.
var amountPattern = regexp.MustCompile(`[-+]?\s*(?:R|Fr|kr|[£$€¥])?\s*(?:\d{1,3}(?:[.,\s]\d{3})+|\d+)[.,]\d{2}\b`)

// LineTokens is the result of recognizing a single line of text.
type LineTokens struct {
	Amount   float64 // magnitude, >= 0
	Negative bool    // a literal '-' was present on the token
	Date     string  // raw date token, "" when the line had none
	Residual string  // line text with the matches and decorations removed
}

// RecognizeLine extracts the first amount token and first date token from a
// line. Only the first match of each is used. Returns false when no amount
// parses to a finite number; such lines yield no transaction.
//
// Dates are located before amounts so that dotted dates ("15.01.2025") are
// never misread as amounts.
func RecognizeLine(line string) (LineTokens, bool) {
	var tok LineTokens

	rest := line
	if m := findDate(rest); m != "" {
		tok.Date = m
		rest = strings.Replace(rest, m, " ", 1)
	}

	loc := amountPattern.FindStringIndex(rest)
	if loc == nil {
		return LineTokens{}, false
	}
	raw := rest[loc[0]:loc[1]]

	amt, err := ParseAmount(raw)
	if err != nil || math.IsNaN(amt) || math.IsInf(amt, 0) {
		return LineTokens{}, false
	}

	tok.Negative = amt < 0 || strings.HasPrefix(strings.TrimSpace(raw), "-")
	tok.Amount = math.Abs(amt)
	tok.Residual = strings.TrimSpace(rest[:loc[0]] + " " + rest[loc[1]:])
	return tok, true
}

// findDate returns the first date-like substring, preferring full dates
// over year-less day-month tokens.
func findDate(line string) string {
	for _, p := range []*regexp.Regexp{datePatternSlash, datePatternText, datePatternDash} {
		if m := p.FindString(line); m != "" {
			return m
		}
	}
	return datePatternShort.FindString(line)
}

// ParseAmount converts a monetary token like "R 1,234.56" or "-£25.99" to a
// float64. Currency symbols, thousands commas and spaces are stripped;
// periods are kept, so a token with more than one decimal point fails to
// parse rather than silently truncating.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"£", "$", "€", "¥", "Fr", "kr", "R", ",", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	return strconv.ParseFloat(s, 64)
}
