package config

import "strings"

// Grouping is how digits are separated in large amounts.
type Grouping int

const (
	// GroupThousands separates every three digits: 1,234,567.
	GroupThousands Grouping = iota
	// GroupLakh separates the last three digits, then every two: 12,34,567.
	GroupLakh
)

// Currency describes how amounts are displayed.
type Currency struct {
	Code     string
	Symbol   string
	Grouping Grouping
}

// Currencies maps ISO codes to display settings.
var Currencies = map[string]Currency{
	"INR": {Code: "INR", Symbol: "₹", Grouping: GroupLakh},
	"USD": {Code: "USD", Symbol: "$", Grouping: GroupThousands},
	"EUR": {Code: "EUR", Symbol: "€", Grouping: GroupThousands},
	"GBP": {Code: "GBP", Symbol: "£", Grouping: GroupThousands},
	"JPY": {Code: "JPY", Symbol: "¥", Grouping: GroupThousands},
}

// LookupCurrency finds a currency by code, case-insensitively.
func LookupCurrency(code string) (Currency, bool) {
	c, ok := Currencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CurrencyFor returns the configured currency, or INR if it is unknown.
func CurrencyFor(cfg Config) Currency {
	if c, ok := LookupCurrency(cfg.General.Currency); ok {
		return c
	}
	return Currencies["INR"]
}
