package badge

import (
	"github.com/shopspring/decimal"
)

// Context is the snapshot of figures one evaluation pass looks at.
type Context struct {
	CurrentStreak int
	LongestStreak int

	// TotalSaved is cumulative unspent daily allowance.
	TotalSaved      decimal.Decimal
	MonthlyIncome   decimal.Decimal
	MonthlySavings  decimal.Decimal
	EmergencyFund   decimal.Decimal
	MonthlyExpenses decimal.Decimal

	HasCompletedGoal         bool
	HasZeroSpendDay          bool
	ConsecutiveZeroSpendDays int
	HasWeekendUnderBudget    bool

	// Earned holds badge ids already awarded.
	Earned map[string]struct{}
}

// Rule pairs a badge id with its eligibility predicate.
type Rule struct {
	ID       string
	Label    string
	Eligible func(Context) bool
}

func streakAtLeast(n int) func(Context) bool {
	return func(c Context) bool { return c.CurrentStreak >= n }
}

func savedAtLeast(n int64) func(Context) bool {
	threshold := decimal.NewFromInt(n)
	return func(c Context) bool { return c.TotalSaved.GreaterThanOrEqual(threshold) }
}

func savingsRateAtLeast(pct int64) func(Context) bool {
	rate := decimal.New(pct, -2)
	return func(c Context) bool {
		if !c.MonthlyIncome.IsPositive() {
			return false
		}
		return c.MonthlySavings.GreaterThanOrEqual(c.MonthlyIncome.Mul(rate))
	}
}

func fundCoversMonths(months int64) func(Context) bool {
	m := decimal.NewFromInt(months)
	return func(c Context) bool {
		if !c.MonthlyExpenses.IsPositive() {
			return false
		}
		return c.EmergencyFund.GreaterThanOrEqual(c.MonthlyExpenses.Mul(m))
	}
}

// Rules is the eligibility table, evaluated in order.
var Rules = []Rule{
	{ID: "first_saver", Label: "streak of at least 1 day", Eligible: streakAtLeast(1)},
	{ID: "week_warrior", Label: "streak of at least 7 days", Eligible: streakAtLeast(7)},
	{ID: "fortnight_fighter", Label: "streak of at least 14 days", Eligible: streakAtLeast(14)},
	{ID: "month_master", Label: "streak of at least 30 days", Eligible: streakAtLeast(30)},
	{ID: "quarter_champion", Label: "streak of at least 90 days", Eligible: streakAtLeast(90)},
	{ID: "goal_getter", Label: "a savings goal reached its target", Eligible: func(c Context) bool { return c.HasCompletedGoal }},

	{ID: "bronze_saver", Label: "saved 1000", Eligible: savedAtLeast(1_000)},
	{ID: "silver_saver", Label: "saved 5000", Eligible: savedAtLeast(5_000)},
	{ID: "gold_saver", Label: "saved 10000", Eligible: savedAtLeast(10_000)},
	{ID: "diamond_saver", Label: "saved 25000", Eligible: savedAtLeast(25_000)},
	{ID: "platinum_elite", Label: "saved 50000", Eligible: savedAtLeast(50_000)},
	{ID: "lakh_legend", Label: "saved 100000", Eligible: savedAtLeast(100_000)},
	{ID: "ten_percent_club", Label: "monthly savings at least 10% of income", Eligible: savingsRateAtLeast(10)},
	{ID: "twenty_percent_pro", Label: "monthly savings at least 20% of income", Eligible: savingsRateAtLeast(20)},
	{ID: "thirty_percent_champion", Label: "monthly savings at least 30% of income", Eligible: savingsRateAtLeast(30)},
	{ID: "emergency_ready", Label: "emergency fund covers 3 months", Eligible: fundCoversMonths(3)},
	{ID: "fortress_built", Label: "emergency fund covers 6 months", Eligible: fundCoversMonths(6)},

	{ID: "zero_day_hero", Label: "a day with nothing spent", Eligible: func(c Context) bool { return c.HasZeroSpendDay }},
	{ID: "triple_zero", Label: "3 consecutive zero-spend days", Eligible: func(c Context) bool { return c.ConsecutiveZeroSpendDays >= 3 }},
	{ID: "weekend_warrior", Label: "last weekend under budget", Eligible: func(c Context) bool { return c.HasWeekendUnderBudget }},
	{ID: "perfect_week", Label: "7 days under budget", Eligible: streakAtLeast(7)},
}

// Evaluate runs the default rule table.
func Evaluate(ctx Context) []string {
	return EvaluateRules(Rules, ctx)
}

// EvaluateRules returns the ids of rules whose predicate holds and which are
// not already earned, in table order.
func EvaluateRules(rules []Rule, ctx Context) []string {
	var ids []string
	for _, r := range rules {
		if _, ok := ctx.Earned[r.ID]; ok {
			continue
		}
		if r.Eligible(ctx) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
