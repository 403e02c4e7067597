// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/config"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with the currency symbol and digit grouping,
// e.g. ₹1,23,456.50 or $123,456.50. Whole amounts drop the paise/cents.
func FormatMoney(amount decimal.Decimal, cur config.Currency) string {
	neg := amount.IsNegative()
	abs := amount.Abs().Round(2)

	whole := abs.Truncate(0)
	frac := abs.Sub(whole)
	intPart := whole.IntPart()

	var grouped string
	if cur.Grouping == config.GroupLakh {
		grouped = FormatLakh(intPart)
	} else {
		grouped = FormatNumber(intPart)
	}

	s := cur.Symbol + grouped
	if !frac.IsZero() {
		s += frac.StringFixed(2)[1:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatLakh groups digits the Indian way.
// e.g., 1234567 -> "12,34,567"
func FormatLakh(n int64) string {
	if n < 0 {
		return "-" + FormatLakh(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var result strings.Builder
	if len(head)%2 == 1 {
		result.WriteString(head[:1])
		head = head[1:]
	}
	for i := 0; i < len(head); i += 2 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(head[i : i+2])
	}
	result.WriteByte(',')
	result.WriteString(tail)
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a money difference with an explicit sign.
func FormatDelta(current, previous decimal.Decimal, cur config.Currency) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return "-" + FormatMoney(delta.Neg(), cur)
	}
	return "+" + FormatMoney(delta, cur)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDay renders a calendar day for tables, e.g. "Wed 10 Sep".
func FormatDay(t time.Time) string {
	return FormatDayOfWeek(int(t.Weekday())) + t.Format(" 02 Jan")
}

// FormatStreak renders a day count, e.g. "1 day" or "12 days".
func FormatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
