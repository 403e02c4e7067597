package cli

import (
	"testing"
	"time"

	"github.com/theirongolddev/finmate/internal/config"

	"github.com/shopspring/decimal"
)

func TestFormatLakh(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{-123456789, "-12,34,56,789"},
	}
	for _, tt := range tests {
		if got := FormatLakh(tt.in); got != tt.want {
			t.Errorf("FormatLakh(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	inr := config.Currencies["INR"]
	usd := config.Currencies["USD"]

	tests := []struct {
		amount string
		cur    config.Currency
		want   string
	}{
		{"500", inr, "₹500"},
		{"123456.5", inr, "₹1,23,456.50"},
		{"332.1428571428571429", inr, "₹332.14"},
		{"123456.5", usd, "$123,456.50"},
		{"-42.005", usd, "-$42.01"},
		{"0", usd, "$0"},
	}
	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.cur)
		if got != tt.want {
			t.Errorf("FormatMoney(%s, %s) = %q, want %q", tt.amount, tt.cur.Code, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	usd := config.Currencies["USD"]
	if got := FormatDelta(decimal.NewFromInt(50), decimal.NewFromInt(80), usd); got != "-$30" {
		t.Errorf("FormatDelta = %q, want -$30", got)
	}
	if got := FormatDelta(decimal.NewFromInt(80), decimal.NewFromInt(50), usd); got != "+$30" {
		t.Errorf("FormatDelta = %q, want +$30", got)
	}
}

func TestFormatDay(t *testing.T) {
	d := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.Local)
	if got := FormatDay(d); got != "Wed 10 Sep" {
		t.Errorf("FormatDay = %q", got)
	}
	if FormatStreak(1) != "1 day" || FormatStreak(0) != "0 days" {
		t.Errorf("FormatStreak plural handling broken")
	}
}
