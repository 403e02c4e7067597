package engine

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/store"
)

// FixedPayment is a fixed expense with its payment record.
type FixedPayment struct {
	Expense       model.FixedExpense
	PaidThisMonth bool
	PaidCount     int
}

func (e *Engine) monthKey() string {
	return e.clock.Now().Local().Format(store.MonthLayout)
}

func findFixed(p model.Profile, id string) (model.FixedExpense, error) {
	for _, fe := range p.FixedExpenses {
		if fe.ID == id {
			return fe, nil
		}
	}
	return model.FixedExpense{}, fmt.Errorf("fixed expense %s: %w", id, store.ErrNotFound)
}

// ToggleFixedPaid flips the current month's paid mark of a fixed expense
// and returns the new state.
func (e *Engine) ToggleFixedPaid(ctx context.Context, expenseID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.profiles.LoadProfile(ctx)
	if err != nil {
		return false, err
	}
	fe, err := findFixed(p, expenseID)
	if err != nil {
		return false, err
	}
	month := e.monthKey()
	paid, err := e.profiles.FixedPaid(ctx, fe.ID, month)
	if err != nil {
		return false, err
	}
	if err := e.profiles.SetFixedPaid(ctx, fe.ID, month, !paid, e.clock.Now()); err != nil {
		return false, err
	}
	e.log.Debugw("fixed expense payment toggled", "expense", fe.Name, "month", month, "paid", !paid)
	return !paid, nil
}

// PaidCount returns how many months a fixed expense was marked paid.
func (e *Engine) PaidCount(ctx context.Context, expenseID string) (int, error) {
	months, err := e.profiles.PaidMonths(ctx, expenseID)
	if err != nil {
		return 0, err
	}
	return len(months), nil
}

// FixedPayments lists every fixed expense with this month's mark and the
// number of months paid.
func (e *Engine) FixedPayments(ctx context.Context) ([]FixedPayment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.profiles.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	month := e.monthKey()
	out := make([]FixedPayment, 0, len(p.FixedExpenses))
	for _, fe := range p.FixedExpenses {
		months, err := e.profiles.PaidMonths(ctx, fe.ID)
		if err != nil {
			return nil, err
		}
		fp := FixedPayment{Expense: fe, PaidCount: len(months)}
		for _, m := range months {
			if m == month {
				fp.PaidThisMonth = true
			}
		}
		out = append(out, fp)
	}
	return out, nil
}
