// Package currency maps locales to display currencies and currencies to
// symbols. Display-only: amounts are never converted.
package currency

import "strings"

var countryCurrency = map[string]string{
	"US": "USD",
	"GB": "GBP",
	"ZA": "ZAR",
	"JP": "JPY",
	"AU": "AUD",
	"CA": "CAD",
	"CH": "CHF",
	"CN": "CNY",
	"SE": "SEK",
	"NZ": "NZD",
}

var currencySymbol = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"ZAR": "R",
	"JPY": "¥",
	"AUD": "$",
	"CAD": "$",
	"CHF": "Fr",
	"CNY": "¥",
	"SEK": "kr",
	"NZD": "$",
}

// FromLocale maps a BCP 47 tag like "en-GB" to a currency code,
// defaulting to USD.
func FromLocale(locale string) string {
	parts := strings.Split(locale, "-")
	if len(parts) > 1 {
		if c, ok := countryCurrency[strings.ToUpper(parts[1])]; ok {
			return c
		}
	}
	return "USD"
}

// Symbol returns the display symbol for a currency code, defaulting to $.
func Symbol(code string) string {
	if s, ok := currencySymbol[strings.ToUpper(code)]; ok {
		return s
	}
	return "$"
}
