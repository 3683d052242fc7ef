package currency

import "testing"

func TestFromLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "USD"},
		{"en-GB", "GBP"},
		{"en-ZA", "ZAR"},
		{"ja-JP", "JPY"},
		{"en-gb", "GBP"},
		{"en", "USD"},
		{"", "USD"},
		{"xx-XX", "USD"},
	}
	for _, tc := range tests {
		if got := FromLocale(tc.locale); got != tc.want {
			t.Errorf("FromLocale(%q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"USD", "$"},
		{"GBP", "£"},
		{"zar", "R"},
		{"CHF", "Fr"},
		{"XXX", "$"},
	}
	for _, tc := range tests {
		if got := Symbol(tc.code); got != tc.want {
			t.Errorf("Symbol(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
