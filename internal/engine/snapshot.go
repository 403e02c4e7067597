package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/badge"
	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/streak"

	"github.com/shopspring/decimal"
)

// Snapshot is everything derived from the stored state at one instant.
type Snapshot struct {
	Now     time.Time
	Profile model.Profile
	Budget  model.Budget

	// Transactions excludes any records dropped as malformed.
	Transactions []model.Transaction
	Skipped      []string
	Daily        pipeline.DailySpend
	First        time.Time

	TodaySpend decimal.Decimal
	MonthSpend decimal.Decimal
	Remaining  decimal.Decimal // today's limit minus today's spend, may be negative

	Streak     int
	StreakStop streak.StopReason
	Context    badge.Context
	Goals      []model.Goal
}

// Snapshot recomputes the derived state without persisting anything.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(ctx)
}

func (e *Engine) snapshot(ctx context.Context) (Snapshot, error) {
	now := e.clock.Now()
	snap := Snapshot{Now: now}

	p, err := e.profiles.LoadProfile(ctx)
	if err != nil {
		return snap, err
	}
	b, err := budget.ForProfile(p, now)
	if err != nil {
		return snap, fmt.Errorf("recomputing budget: %w", err)
	}
	p.ApplyBudget(b)
	snap.Profile = p
	snap.Budget = b

	txs, err := e.txs.ListTransactions(ctx)
	if err != nil {
		return snap, err
	}
	daily, kept, skipped, err := e.aggregate(txs)
	if err != nil {
		return snap, err
	}
	snap.Transactions = kept
	snap.Skipped = skipped
	snap.Daily = daily
	snap.First, _ = daily.First()

	goals, err := e.goals.ListGoals(ctx)
	if err != nil {
		return snap, err
	}
	snap.Goals = goals

	limit := b.DailySpendingLimit
	walk := e.walker.Walk(daily, limit, now, snap.First)
	snap.Streak = walk.Days
	snap.StreakStop = walk.Stop
	snap.TodaySpend = daily.On(now)
	snap.MonthSpend = pipeline.MonthSpend(daily, now)
	snap.Remaining = limit.Sub(snap.TodaySpend)
	snap.Context = e.badgeContext(p, daily, goals, walk.Days, now, snap.First)
	return snap, nil
}

// aggregate builds the daily map. With SkipMalformed set, each malformed
// record is logged, dropped and the aggregation retried.
func (e *Engine) aggregate(txs []model.Transaction) (pipeline.DailySpend, []model.Transaction, []string, error) {
	var skipped []string
	for {
		daily, err := pipeline.AggregateByDay(txs)
		if err == nil {
			return daily, txs, skipped, nil
		}
		var mErr *pipeline.MalformedTransactionError
		if !e.skipMalformed || !errors.As(err, &mErr) {
			return nil, nil, nil, err
		}
		e.log.Warnw("dropping transaction with malformed date",
			"id", mErr.TransactionID, "date", mErr.Date, "error", mErr.Err)
		skipped = append(skipped, mErr.TransactionID)
		txs = without(txs, mErr.TransactionID)
	}
}

func without(txs []model.Transaction, id string) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) badgeContext(p model.Profile, daily pipeline.DailySpend, goals []model.Goal, current int, now, first time.Time) badge.Context {
	limit := p.DailySpendingLimit
	longest := p.Gamification.LongestStreak
	if current > longest {
		longest = current
	}

	completed := false
	for _, g := range goals {
		if g.Completed() {
			completed = true
			break
		}
	}

	return badge.Context{
		CurrentStreak:            current,
		LongestStreak:            longest,
		TotalSaved:               pipeline.CumulativeSavings(daily, limit, now),
		MonthlyIncome:            p.Income,
		MonthlySavings:           p.Savings,
		EmergencyFund:            p.EmergencyFund.Current,
		MonthlyExpenses:          p.MonthlyExpenses(),
		HasCompletedGoal:         completed,
		HasZeroSpendDay:          streak.HasZeroSpendDay(daily, now, first),
		ConsecutiveZeroSpendDays: e.walker.ZeroSpendRun(daily, now, first),
		HasWeekendUnderBudget:    streak.WeekendUnderBudget(daily, limit, now, first),
		Earned:                   p.Gamification.Earned(),
	}
}
