package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

// September has 30 days.
var september = time.Date(2025, time.September, 10, 9, 0, 0, 0, time.Local)

func TestAllocate_ProfessionalScenario(t *testing.T) {
	b, err := Allocate(dec(t, "50000"), decimal.Zero, model.RoleProfessional, september)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"Needs", b.Needs, "25000"},
		{"Wants", b.Wants, "15000"},
		{"Savings", b.Savings, "10000"},
		{"DailySpendingLimit", b.DailySpendingLimit, "500"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(t, c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if b.DaysInMonth != 30 {
		t.Errorf("DaysInMonth = %d, want 30", b.DaysInMonth)
	}
}

func TestAllocate_SplitsCoverGrossIncome(t *testing.T) {
	income := dec(t, "73321.55")
	for _, role := range model.Roles {
		t.Run(string(role), func(t *testing.T) {
			b, err := Allocate(income, dec(t, "12000"), role, september)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sum := b.Needs.Add(b.Wants).Add(b.Savings)
			if !sum.Equal(income) {
				t.Fatalf("needs+wants+savings = %s, want %s", sum, income)
			}

			s := Splits[role]
			if s.Needs+s.Wants+s.Savings != 100 {
				t.Fatalf("split for %s sums to %d, want 100", role, s.Needs+s.Wants+s.Savings)
			}
		})
	}
}

func TestAllocate_FixedExpensesDoNotReduceBases(t *testing.T) {
	without, err := Allocate(dec(t, "40000"), decimal.Zero, model.RoleStudent, september)
	if err != nil {
		t.Fatal(err)
	}
	with, err := Allocate(dec(t, "40000"), dec(t, "30000"), model.RoleStudent, september)
	if err != nil {
		t.Fatal(err)
	}

	if !with.Wants.Equal(without.Wants) || !with.Needs.Equal(without.Needs) {
		t.Fatalf("fixed expenses changed the split: %+v vs %+v", with, without)
	}
	if !with.FixedExpenses.Equal(dec(t, "30000")) {
		t.Errorf("FixedExpenses = %s, want 30000", with.FixedExpenses)
	}
	// Student needs = 24000, fixed 30000 -> flexible floor at zero.
	if !with.FlexibleNeeds.IsZero() {
		t.Errorf("FlexibleNeeds = %s, want 0", with.FlexibleNeeds)
	}
	if !without.FlexibleNeeds.Equal(dec(t, "24000")) {
		t.Errorf("FlexibleNeeds without fixed = %s, want 24000", without.FlexibleNeeds)
	}
}

func TestAllocate_ZeroIncome(t *testing.T) {
	b, err := Allocate(decimal.Zero, decimal.Zero, model.RoleHousewife, september)
	if err != nil {
		t.Fatalf("zero income should not error: %v", err)
	}
	for name, v := range map[string]decimal.Decimal{
		"Needs": b.Needs, "Wants": b.Wants, "Savings": b.Savings, "DailySpendingLimit": b.DailySpendingLimit,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
}

func TestAllocate_InvalidRole(t *testing.T) {
	_, err := Allocate(dec(t, "1000"), decimal.Zero, model.Role("Astronaut"), september)
	var roleErr *InvalidRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("err = %v, want *InvalidRoleError", err)
	}
	if roleErr.Role != "Astronaut" {
		t.Errorf("Role = %q, want Astronaut", roleErr.Role)
	}

	if _, err := Allocate(dec(t, "1000"), decimal.Zero, "", september); err == nil {
		t.Fatal("empty role should be rejected")
	}
}

func TestAllocate_NegativeAmounts(t *testing.T) {
	if _, err := Allocate(dec(t, "-1"), decimal.Zero, model.RoleStudent, september); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative income err = %v, want ErrNegativeAmount", err)
	}
	if _, err := Allocate(dec(t, "100"), dec(t, "-5"), model.RoleStudent, september); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative fixed err = %v, want ErrNegativeAmount", err)
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	a, _ := Allocate(dec(t, "31000"), dec(t, "500"), model.RoleProfessional, september)
	b, _ := Allocate(dec(t, "31000"), dec(t, "500"), model.RoleProfessional, september)
	if !a.DailySpendingLimit.Equal(b.DailySpendingLimit) || !a.Needs.Equal(b.Needs) {
		t.Fatalf("Allocate not deterministic: %+v vs %+v", a, b)
	}
}

func TestAllocate_DailyLimitFollowsMonthLength(t *testing.T) {
	income := dec(t, "31000") // wants = 9300
	cases := []struct {
		month time.Time
		days  int
		limit string
	}{
		{time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local), 31, "300"},
		{time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local), 28, "332.1428571428571429"},
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local), 29, "320.6896551724137931"},
	}
	for _, c := range cases {
		b, err := Allocate(income, decimal.Zero, model.RoleProfessional, c.month)
		if err != nil {
			t.Fatal(err)
		}
		if b.DaysInMonth != c.days {
			t.Errorf("%s: DaysInMonth = %d, want %d", c.month.Format("2006-01"), b.DaysInMonth, c.days)
		}
		if !b.DailySpendingLimit.Equal(dec(t, c.limit)) {
			t.Errorf("%s: DailySpendingLimit = %s, want %s", c.month.Format("2006-01"), b.DailySpendingLimit, c.limit)
		}
	}
}
