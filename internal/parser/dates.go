package parser

import (
	"fmt"
	"strings"
	"time"
)

// Sanity bounds for normalized dates. time.Parse already rejects bad day
// and month values; the year range guards against two-digit ambiguity and
// OCR garbage.
const (
	minYear = 1900
	maxYear = 2100
)

// dateLayouts is tried in priority order. Earlier, more specific layouts
// win so that "15/01/2025" is read day-first, not month-first.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"02.01.2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2 Jan 06",
	"01/02/2006", // M/D/Y, last resort for US-style tokens
}

// partial layouts lack a year; the caller's current year is appended.
var partialLayouts = []struct {
	layout string
	join   string
}{
	{"2 Jan 2006", " "},
	{"2/1/2006", "/"},
}

// NormalizeDate resolves a free-text date token to a calendar date. The
// second return is false when no layout both parses and lands within the
// sanity bounds; callers treat that as user-correctable, never fatal.
func NormalizeDate(token string, currentYear int) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	if t, ok := normalizeToken(token, currentYear); ok {
		return t, true
	}
	// OCR often shouts month names ("15 JAN 2025"); time.Parse is
	// case-sensitive, so retry with canonical capitalization.
	return normalizeToken(titleWords(token), currentYear)
}

func normalizeToken(token string, currentYear int) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, token); err == nil && withinBounds(t) {
			return t, true
		}
	}

	for _, p := range partialLayouts {
		full := fmt.Sprintf("%s%s%d", token, p.join, currentYear)
		if t, err := time.Parse(p.layout, full); err == nil && withinBounds(t) {
			return t, true
		}
	}

	return time.Time{}, false
}

func withinBounds(t time.Time) bool {
	return t.Year() >= minYear && t.Year() <= maxYear
}

// titleWords lowercases a token and capitalizes the first letter of each
// alphabetic run, mapping "15 JAN 2025" to "15 Jan 2025" and
// "15-JAN-2025" to "15-Jan-2025". Runs of whitespace collapse to one
// space so the space-separated layouts still line up.
func titleWords(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	b := []byte(s)
	inWord := false
	for i, c := range b {
		alpha := c >= 'a' && c <= 'z'
		if alpha && !inWord {
			b[i] = c - 'a' + 'A'
		}
		inWord = alpha
	}
	return string(b)
}
