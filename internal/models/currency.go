package models

import "strings"

// Currency identifies one of the supported currencies.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

var validCurrencies = map[Currency]bool{
	CurrencyARS: true,
	CurrencyUSD: true,
}

// ValidCurrency returns true if c is a supported currency.
func ValidCurrency(c Currency) bool {
	return validCurrencies[c]
}

// ParseCurrency normalizes a currency code, returning "" for unknown codes.
func ParseCurrency(s string) Currency {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !ValidCurrency(c) {
		return ""
	}
	return c
}
