package parser

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		token string
		want  time.Time
		ok    bool
	}{
		{"15/01/2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"15/01/25", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"15.01.2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"4 Dec 2024", time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC), true},
		{"4 December 2024", time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC), true},
		{"4-Dec-2024", time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC), true},
		// tokens without a year assume the caller's current year
		{"4 Dec", time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC), true},
		{"4/12", time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC), true},
		// OCR shouting
		{"15 JAN 2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"15-JAN-2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		// day-first wins over month-first when both could apply
		{"03/04/2025", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), true},
		// US-style token only parseable as M/D/Y
		{"12/25/2025", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), true},
		// out of sanity bounds
		{"15/01/1850", time.Time{}, false},
		{"15/01/2150", time.Time{}, false},
		// nonsense
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"99/99/2025", time.Time{}, false},
	}
	for _, tc := range tests {
		got, ok := NormalizeDate(tc.token, 2025)
		if ok != tc.ok {
			t.Errorf("NormalizeDate(%q) ok = %v, want %v", tc.token, ok, tc.ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("NormalizeDate(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct{ in, want string }{
		{"15 JAN 2025", "15 Jan 2025"},
		{"15-JAN-2025", "15-Jan-2025"},
		{"15  JAN  2025", "15 Jan 2025"},
	}
	for _, tc := range tests {
		if got := titleWords(tc.in); got != tc.want {
			t.Errorf("titleWords(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
