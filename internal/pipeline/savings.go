package pipeline

import (
	"time"

	"github.com/shopspring/decimal"
)

// CumulativeSavings adds up what was left of the daily limit on every
// recorded day except today. Overspent days contribute nothing.
func CumulativeSavings(daily DailySpend, limit decimal.Decimal, today time.Time) decimal.Decimal {
	todayKey := DayOf(today)
	total := decimal.Zero
	for day, spent := range daily {
		if day == todayKey {
			continue
		}
		if saved := limit.Sub(spent); saved.IsPositive() {
			total = total.Add(saved)
		}
	}
	return total
}

// MonthSpend sums spending in the calendar month containing t.
func MonthSpend(daily DailySpend, t time.Time) decimal.Decimal {
	prefix := string(DayOf(t))[:7]
	total := decimal.Zero
	for day, spent := range daily {
		if string(day)[:7] == prefix {
			total = total.Add(spent)
		}
	}
	return total
}
