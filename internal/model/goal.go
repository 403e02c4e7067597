package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is one payment toward a goal.
type Contribution struct {
	Amount decimal.Decimal
	Date   time.Time
}

// Goal is a savings target.
type Goal struct {
	ID            string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	// MonthlyContribution is the amount planned toward the goal each month.
	MonthlyContribution decimal.Decimal
	Contributions       []Contribution
}

// Completed reports whether the goal reached its target.
func (g Goal) Completed() bool {
	return g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Progress returns completion as a 0-1 fraction.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	if pct > 1 {
		pct = 1
	}
	return pct
}

// TotalMonthlyContributions sums the planned monthly amounts of goals that
// are still open.
func TotalMonthlyContributions(goals []Goal) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goals {
		if !g.Completed() {
			total = total.Add(g.MonthlyContribution)
		}
	}
	return total
}
