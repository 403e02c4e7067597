// Package budget turns income, role, and fixed costs into a monthly split and
// a daily spending allowance.
package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when income or fixed costs are negative.
var ErrNegativeAmount = errors.New("amount must not be negative")

// InvalidRoleError reports a role outside the known set.
type InvalidRoleError struct {
	Role model.Role
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q (want one of Student, Professional, Housewife)", string(e.Role))
}

// Split is a needs/wants/savings percentage triple. Parts sum to 100.
type Split struct {
	Needs   int64
	Wants   int64
	Savings int64
}

// Splits maps each role to its percentages of gross income.
var Splits = map[model.Role]Split{
	model.RoleStudent:      {Needs: 60, Wants: 30, Savings: 10},
	model.RoleProfessional: {Needs: 50, Wants: 30, Savings: 20},
	model.RoleHousewife:    {Needs: 55, Wants: 25, Savings: 20},
}

// SplitFor returns the split for role.
func SplitFor(role model.Role) (Split, error) {
	s, ok := Splits[role]
	if !ok {
		return Split{}, &InvalidRoleError{Role: role}
	}
	return s, nil
}

var hundred = decimal.NewFromInt(100)

// Allocate computes the budget for one month. Percentages apply to gross
// income; fixed expenses are reported alongside needs but never reduce the
// bases. The daily limit spreads wants over the days of month's calendar month.
func Allocate(income, fixedExpensesTotal decimal.Decimal, role model.Role, month time.Time) (model.Budget, error) {
	split, err := SplitFor(role)
	if err != nil {
		return model.Budget{}, err
	}
	if income.IsNegative() {
		return model.Budget{}, fmt.Errorf("income %s: %w", income, ErrNegativeAmount)
	}
	if fixedExpensesTotal.IsNegative() {
		return model.Budget{}, fmt.Errorf("fixed expenses %s: %w", fixedExpensesTotal, ErrNegativeAmount)
	}

	days := DaysInMonth(month)
	b := model.Budget{
		Needs:         percentOf(income, split.Needs),
		Wants:         percentOf(income, split.Wants),
		Savings:       percentOf(income, split.Savings),
		FixedExpenses: fixedExpensesTotal,
		DaysInMonth:   days,
	}
	b.DailySpendingLimit = b.Wants.Div(decimal.NewFromInt(int64(days)))
	b.FlexibleNeeds = decimal.Max(decimal.Zero, b.Needs.Sub(fixedExpensesTotal))
	return b, nil
}

// ForProfile allocates using the profile's own income, fixed expenses and role.
func ForProfile(p model.Profile, month time.Time) (model.Budget, error) {
	return Allocate(p.Income, model.FixedExpensesTotal(p.FixedExpenses), p.Role, month)
}

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

func percentOf(v decimal.Decimal, pct int64) decimal.Decimal {
	return v.Mul(decimal.NewFromInt(pct)).Div(hundred)
}
