// Package pipeline aggregates transaction logs into per-day spending.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// DayKey identifies a local calendar day, formatted as 2006-01-02.
type DayKey string

// DayOf returns the local calendar day containing t.
func DayOf(t time.Time) DayKey {
	return DayKey(t.Local().Format(dayLayout))
}

// Time returns the first instant of the day in local time.
func (k DayKey) Time() time.Time {
	t, _ := time.Parse(dayLayout, string(k))
	return StartOfDay(time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local))
}

// StartOfDay returns the first instant of t's local calendar day. That is
// midnight, except where a DST jump skips midnight, in which case it is
// the moment the new offset begins.
func StartOfDay(t time.Time) time.Time {
	l := t.Local()
	start := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
	if start.Day() != l.Day() {
		_, start = start.ZoneBounds()
	}
	return start
}

// Noon returns local midday of t's calendar day.
func Noon(t time.Time) time.Time {
	return AddDays(t, 0)
}

// AddDays moves n calendar days from t's local date and lands on midday.
// Stepping from midday never skips or repeats a date across DST changes.
func AddDays(t time.Time, n int) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day()+n, 12, 0, 0, 0, time.Local)
}

// DailySpend maps each calendar day to the total spent that day.
// Days with no transactions are absent and read as zero.
type DailySpend map[DayKey]decimal.Decimal

// On returns the amount spent on the day containing t.
func (d DailySpend) On(t time.Time) decimal.Decimal {
	if v, ok := d[DayOf(t)]; ok {
		return v
	}
	return decimal.Zero
}

// Total sums every day.
func (d DailySpend) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range d {
		total = total.Add(v)
	}
	return total
}

// First returns midnight of the earliest recorded day.
func (d DailySpend) First() (time.Time, bool) {
	if len(d) == 0 {
		return time.Time{}, false
	}
	var first DayKey
	for k := range d {
		if first == "" || k < first {
			first = k
		}
	}
	return first.Time(), true
}

// DayTotal is one row of a day-by-day series.
type DayTotal struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Range returns one row per day in [from, to], most recent first.
// Days without spending appear as zero so charts show gaps.
func (d DailySpend) Range(from, to time.Time) []DayTotal {
	end := DayOf(to)

	var rows []DayTotal
	for day := Noon(from); DayOf(day) <= end; day = AddDays(day, 1) {
		rows = append(rows, DayTotal{Date: StartOfDay(day), Amount: d.On(day)})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}

// AggregateByDay sums transaction amounts per local calendar day. A single
// unparsable date fails the whole aggregation with *MalformedTransactionError
// and no partial result.
func AggregateByDay(txs []model.Transaction) (DailySpend, error) {
	daily := make(DailySpend)
	for _, tx := range txs {
		at, err := ParseDate(tx.Date)
		if err != nil {
			return nil, &MalformedTransactionError{TransactionID: tx.ID, Date: tx.Date, Err: err}
		}
		key := DayOf(at)
		daily[key] = daily.On(at).Add(tx.Amount)
	}
	return daily, nil
}

// FilterByCategory returns transactions whose category contains the substring.
func FilterByCategory(txs []model.Transaction, category string) []model.Transaction {
	if category == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if containsIgnoreCase(tx.Category, category) {
			result = append(result, tx)
		}
	}
	return result
}

// FilterByTime returns transactions dated within [since, until).
// Transactions with unparsable dates are dropped.
func FilterByTime(txs []model.Transaction, since, until time.Time) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		at, err := ParseDate(tx.Date)
		if err != nil {
			continue
		}
		if !since.IsZero() && at.Before(since) {
			continue
		}
		if !until.IsZero() && !at.Before(until) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// SortNewestFirst orders transactions by date descending; unparsable dates sort last.
func SortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		ti, ei := ParseDate(txs[i].Date)
		tj, ej := ParseDate(txs[j].Date)
		switch {
		case ei != nil:
			return false
		case ej != nil:
			return true
		}
		return ti.After(tj)
	})
}

// AggregateCategories totals spending per category, largest first.
func AggregateCategories(txs []model.Transaction) []CategoryTotal {
	byCat := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		byCat[tx.Category] = byCat[tx.Category].Add(tx.Amount)
	}
	totals := make([]CategoryTotal, 0, len(byCat))
	for c, amt := range byCat {
		totals = append(totals, CategoryTotal{Category: c, Amount: amt})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Category < totals[j].Category
		}
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
	return totals
}

// CategoryTotal is the spend for one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
