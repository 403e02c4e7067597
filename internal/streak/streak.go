// Package streak walks the daily spend history backward from today to
// measure how long the user has stayed within their daily limit.
package streak

import (
	"time"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/shopspring/decimal"
)

// Default walk bounds.
const (
	DefaultMaxLookback       = 365
	DefaultZeroSpendLookback = 30
)

// StopReason records why a walk ended.
type StopReason int

const (
	StopNoHistory StopReason = iota
	StopTodayOverLimit
	StopOverLimit
	StopHistoryStart
	StopLookbackCap
)

func (r StopReason) String() string {
	switch r {
	case StopNoHistory:
		return "no history"
	case StopTodayOverLimit:
		return "today over limit"
	case StopOverLimit:
		return "over limit"
	case StopHistoryStart:
		return "reached first transaction"
	case StopLookbackCap:
		return "lookback cap"
	}
	return "unknown"
}

// Result is the outcome of a streak walk.
type Result struct {
	Days int
	Stop StopReason
	// BrokenOn is the over-limit day that ended the walk, zero otherwise.
	BrokenOn time.Time
}

// Walker holds the bounds for backward walks. The zero value walks nothing
// past today; use New for the defaults.
type Walker struct {
	// MaxLookback is the number of past days examined before giving up.
	MaxLookback int
	// ZeroSpendLookback bounds the consecutive zero-spend count.
	ZeroSpendLookback int
}

// New returns a Walker with the default bounds.
func New() Walker {
	return Walker{MaxLookback: DefaultMaxLookback, ZeroSpendLookback: DefaultZeroSpendLookback}
}

// Walk computes the current streak. first is the date of the earliest
// transaction ever recorded; a zero first means there is no history.
//
// Today is credited as soon as it is not over the limit, so the value can
// drop to zero later the same day and come back once the day has settled.
func (w Walker) Walk(daily pipeline.DailySpend, limit decimal.Decimal, today, first time.Time) Result {
	if first.IsZero() {
		return Result{Stop: StopNoHistory}
	}
	if daily.On(today).GreaterThan(limit) {
		return Result{Stop: StopTodayOverLimit}
	}

	floor := pipeline.DayOf(first)
	cursor := pipeline.AddDays(today, -1)
	res := Result{Days: 1}
	for examined := 0; ; examined++ {
		switch {
		case examined >= w.MaxLookback:
			res.Stop = StopLookbackCap
			return res
		case pipeline.DayOf(cursor) < floor:
			res.Stop = StopHistoryStart
			return res
		case daily.On(cursor).GreaterThan(limit):
			res.Stop = StopOverLimit
			res.BrokenOn = pipeline.StartOfDay(cursor)
			return res
		}
		res.Days++
		cursor = pipeline.AddDays(cursor, -1)
	}
}

// Current is Walk reduced to the day count.
func (w Walker) Current(daily pipeline.DailySpend, limit decimal.Decimal, today, first time.Time) int {
	return w.Walk(daily, limit, today, first).Days
}

// Compute runs the default walker.
func Compute(daily pipeline.DailySpend, limit decimal.Decimal, today, first time.Time) int {
	return New().Current(daily, limit, today, first)
}

// ZeroSpendRun counts consecutive days with no spending, starting from
// yesterday and stopping at the first day with spend, the start of history,
// or after ZeroSpendLookback days.
func (w Walker) ZeroSpendRun(daily pipeline.DailySpend, today, first time.Time) int {
	if first.IsZero() {
		return 0
	}
	floor := pipeline.DayOf(first)
	cursor := pipeline.AddDays(today, -1)
	run := 0
	for run < w.ZeroSpendLookback && pipeline.DayOf(cursor) >= floor {
		if !daily.On(cursor).IsZero() {
			break
		}
		run++
		cursor = pipeline.AddDays(cursor, -1)
	}
	return run
}

// HasZeroSpendDay reports whether any day from first through today had no spending.
func HasZeroSpendDay(daily pipeline.DailySpend, today, first time.Time) bool {
	if first.IsZero() {
		return false
	}
	end := pipeline.DayOf(today)
	for day := pipeline.Noon(first); pipeline.DayOf(day) <= end; day = pipeline.AddDays(day, 1) {
		if daily.On(day).IsZero() {
			return true
		}
	}
	return false
}

// LastWeekend returns the Saturday and Sunday of the most recent weekend
// that ended before today.
func LastWeekend(today time.Time) (sat, sun time.Time) {
	day := pipeline.AddDays(today, -1)
	for day.Weekday() != time.Sunday {
		day = pipeline.AddDays(day, -1)
	}
	return pipeline.StartOfDay(pipeline.AddDays(day, -1)), pipeline.StartOfDay(day)
}

// WeekendUnderBudget reports whether both days of the last completed
// weekend fall inside recorded history and stayed within the limit.
func WeekendUnderBudget(daily pipeline.DailySpend, limit decimal.Decimal, today, first time.Time) bool {
	if first.IsZero() {
		return false
	}
	sat, sun := LastWeekend(today)
	if pipeline.DayOf(sat) < pipeline.DayOf(first) {
		return false
	}
	return !daily.On(sat).GreaterThan(limit) && !daily.On(sun).GreaterThan(limit)
}

// RecordStreak returns state with the new current streak applied. The
// longest streak only ever grows.
func RecordStreak(state model.GamificationState, streak int, at time.Time) model.GamificationState {
	next := state
	next.EarnedBadges = append([]string(nil), state.EarnedBadges...)
	next.CurrentStreak = streak
	if streak > next.LongestStreak {
		next.LongestStreak = streak
	}
	stamp := at
	next.LastStreakDate = &stamp
	return next
}
