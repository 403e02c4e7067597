package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned when an amount field is blank.
var ErrEmptyAmount = errors.New("amount is empty")

// ParseAmount reads a user-typed money amount. Currency symbols, digit
// grouping commas and surrounding spaces are ignored: "₹1,23,456.50" and
// "123456.5" are the same amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '_', '₹', '$', '€', '£', '¥':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// ParseFixedExpense reads one "Name=Amount" pair, e.g. "Rent=12,000".
func ParseFixedExpense(s string) (model.FixedExpense, error) {
	name, amt, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return model.FixedExpense{}, fmt.Errorf("fixed expense %q: want Name=Amount", strings.TrimSpace(s))
	}
	d, err := ParseAmount(amt)
	if err != nil {
		return model.FixedExpense{}, fmt.Errorf("fixed expense %s: %w", name, err)
	}
	if d.IsNegative() {
		return model.FixedExpense{}, fmt.Errorf("fixed expense %s: amount must not be negative", name)
	}
	return model.FixedExpense{Name: name, Amount: d}, nil
}

// ParseFixedExpenses reads a semicolon or newline separated list of
// "Name=Amount" pairs. Blank entries are skipped.
func ParseFixedExpenses(s string) ([]model.FixedExpense, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	var out []model.FixedExpense
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		fe, err := ParseFixedExpense(f)
		if err != nil {
			return nil, err
		}
		out = append(out, fe)
	}
	return out, nil
}
