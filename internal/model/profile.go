package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role is the household archetype that selects the budget split.
type Role string

// Known roles.
const (
	RoleStudent      Role = "Student"
	RoleProfessional Role = "Professional"
	RoleHousewife    Role = "Housewife"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleStudent, RoleProfessional, RoleHousewife}

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// FixedExpense is a recurring cost tracked as part of needs.
type FixedExpense struct {
	ID     string
	Name   string
	Amount decimal.Decimal
}

// FixedExpensesTotal sums the amounts of the given fixed expenses.
func FixedExpensesTotal(expenses []FixedExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Budget is the derived monthly split for a profile.
type Budget struct {
	Needs              decimal.Decimal
	Wants              decimal.Decimal
	Savings            decimal.Decimal
	DailySpendingLimit decimal.Decimal
	FixedExpenses      decimal.Decimal
	FlexibleNeeds      decimal.Decimal // needs left after fixed expenses, never negative
	DaysInMonth        int
}

// FundAction is the kind of emergency fund movement.
type FundAction string

// Emergency fund actions.
const (
	FundDeposit  FundAction = "deposit"
	FundWithdraw FundAction = "withdraw"
)

// EmergencyFundEntry records one deposit or withdrawal.
type EmergencyFundEntry struct {
	Action FundAction
	Amount decimal.Decimal
	Date   time.Time
	Notes  string
}

// EmergencyFund tracks the rainy-day balance and its target.
type EmergencyFund struct {
	Target  decimal.Decimal
	Current decimal.Decimal
	History []EmergencyFundEntry
}

// GamificationState holds earned badges and streak highs.
// EarnedBadges only grows and holds each id once.
type GamificationState struct {
	EarnedBadges   []string
	CurrentStreak  int
	LongestStreak  int
	LastStreakDate *time.Time
}

// Earned returns the earned badge ids as a set.
func (g GamificationState) Earned() map[string]struct{} {
	set := make(map[string]struct{}, len(g.EarnedBadges))
	for _, b := range g.EarnedBadges {
		set[b] = struct{}{}
	}
	return set
}

// Profile is the single account's financial profile. The Needs, Wants,
// Savings and DailySpendingLimit fields are derived and always recomputed.
type Profile struct {
	Role          Role
	Income        decimal.Decimal
	FixedExpenses []FixedExpense

	Needs              decimal.Decimal
	Wants              decimal.Decimal
	Savings            decimal.Decimal
	DailySpendingLimit decimal.Decimal

	EmergencyFund EmergencyFund
	Gamification  GamificationState
}

// ApplyBudget copies the derived fields of b onto the profile.
func (p *Profile) ApplyBudget(b Budget) {
	p.Needs = b.Needs
	p.Wants = b.Wants
	p.Savings = b.Savings
	p.DailySpendingLimit = b.DailySpendingLimit
}

// MonthlyExpenses is planned monthly outflow (needs plus wants).
func (p Profile) MonthlyExpenses() decimal.Decimal {
	return p.Needs.Add(p.Wants)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s income=%s limit=%s/day", p.Role, p.Income.StringFixed(2), p.DailySpendingLimit.StringFixed(2))
}
