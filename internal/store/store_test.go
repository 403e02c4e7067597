package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "finmate.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLoadProfile_NoProfile(t *testing.T) {
	s := openTest(t)
	if _, err := s.LoadProfile(context.Background()); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("LoadProfile err = %v, want ErrNoProfile", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	when := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.Local)

	p := model.Profile{
		Role:   model.RoleProfessional,
		Income: d("50000"),
		FixedExpenses: []model.FixedExpense{
			{ID: "rent", Name: "Rent", Amount: d("12000")},
			{ID: "net", Name: "Internet", Amount: d("799.50")},
		},
		Needs:              d("25000"),
		Wants:              d("15000"),
		Savings:            d("10000"),
		DailySpendingLimit: d("500"),
		EmergencyFund: model.EmergencyFund{
			Target:  d("240000"),
			Current: d("3000"),
			History: []model.EmergencyFundEntry{{Action: model.FundDeposit, Amount: d("3000"), Date: when, Notes: "first"}},
		},
		Gamification: model.GamificationState{
			EarnedBadges:   []string{"first_saver", "bronze_saver"},
			CurrentStreak:  4,
			LongestStreak:  9,
			LastStreakDate: &when,
		},
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := s.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got.Role != p.Role || !got.Income.Equal(p.Income) || !got.DailySpendingLimit.Equal(p.DailySpendingLimit) {
		t.Errorf("profile = %v, want %v", got, p)
	}
	if len(got.FixedExpenses) != 2 || got.FixedExpenses[1].Name != "Internet" || !got.FixedExpenses[1].Amount.Equal(d("799.5")) {
		t.Errorf("fixed expenses = %+v", got.FixedExpenses)
	}
	if len(got.EmergencyFund.History) != 1 || !got.EmergencyFund.History[0].Date.Equal(when) {
		t.Errorf("fund history = %+v", got.EmergencyFund.History)
	}
	if got.Gamification.LongestStreak != 9 || got.Gamification.LastStreakDate == nil || !got.Gamification.LastStreakDate.Equal(when) {
		t.Errorf("gamification = %+v", got.Gamification)
	}
	if len(got.Gamification.EarnedBadges) != 2 || got.Gamification.EarnedBadges[0] != "first_saver" {
		t.Errorf("earned = %v", got.Gamification.EarnedBadges)
	}
}

func TestSaveProfile_NeverRevokes(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	p := model.Profile{Role: model.RoleStudent, Gamification: model.GamificationState{
		EarnedBadges: []string{"first_saver", "week_warrior"}, LongestStreak: 12,
	}}
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	// A stale copy without the badges and a lower high-water mark.
	stale := model.Profile{Role: model.RoleStudent, Gamification: model.GamificationState{LongestStreak: 3}}
	if err := s.SaveProfile(ctx, stale); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadProfile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Gamification.EarnedBadges) != 2 {
		t.Errorf("earned = %v, want both badges kept", got.Gamification.EarnedBadges)
	}
	if got.Gamification.LongestStreak != 12 {
		t.Errorf("longest = %d, want 12", got.Gamification.LongestStreak)
	}
}

func TestTransactions_CRUD(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	tx := model.Transaction{ID: "t1", Amount: d("120.75"), Category: "Food", Description: "lunch", Date: "2025-09-10T13:00:00+05:30"}
	if err := s.AddTransaction(ctx, tx); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := s.AddTransaction(ctx, tx); err == nil {
		t.Fatal("duplicate id accepted")
	}

	got, err := s.GetTransaction(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Date != tx.Date || !got.Amount.Equal(tx.Amount) || got.Description != "lunch" {
		t.Errorf("got %+v, want %+v", got, tx)
	}

	tx.Amount = d("99")
	if err := s.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	list, err := s.ListTransactions(ctx)
	if err != nil || len(list) != 1 || !list[0].Amount.Equal(d("99")) {
		t.Fatalf("ListTransactions = %+v, %v", list, err)
	}

	if err := s.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if err := s.DeleteTransaction(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetTransaction(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetTransaction err = %v, want ErrNotFound", err)
	}
	if err := s.UpdateTransaction(ctx, tx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateTransaction err = %v, want ErrNotFound", err)
	}
}

func TestAddTransactions_SkipsExisting(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	batch := []model.Transaction{
		{ID: "a", Amount: d("1"), Category: "Food", Date: "2025-09-01"},
		{ID: "b", Amount: d("2"), Category: "Food", Date: "2025-09-02"},
	}
	n, err := s.AddTransactions(ctx, batch)
	if err != nil || n != 2 {
		t.Fatalf("first batch = %d, %v", n, err)
	}
	batch = append(batch, model.Transaction{ID: "c", Amount: d("3"), Category: "Food", Date: "2025-09-03"})
	n, err = s.AddTransactions(ctx, batch)
	if err != nil || n != 1 {
		t.Fatalf("second batch = %d, %v; want 1 new row", n, err)
	}
	if count, _ := s.TransactionCount(ctx); count != 3 {
		t.Fatalf("TransactionCount = %d, want 3", count)
	}
}

func TestGoals(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	when := time.Date(2025, time.September, 1, 9, 0, 0, 0, time.Local)

	g := model.Goal{ID: "g1", Name: "Laptop", TargetAmount: d("60000"), CurrentAmount: d("0"), MonthlyContribution: d("5000")}
	if err := s.SaveGoal(ctx, g); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}
	g.CurrentAmount = d("60000")
	g.Contributions = []model.Contribution{{Amount: d("60000"), Date: when}}
	if err := s.SaveGoal(ctx, g); err != nil {
		t.Fatalf("SaveGoal update: %v", err)
	}

	got, err := s.GetGoal(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if !got.Completed() || len(got.Contributions) != 1 || !got.Contributions[0].Date.Equal(when) {
		t.Fatalf("goal = %+v", got)
	}
	if !got.MonthlyContribution.Equal(d("5000")) {
		t.Errorf("monthly contribution = %s, want 5000", got.MonthlyContribution)
	}

	if err := s.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if _, err := s.GetGoal(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetGoal err = %v, want ErrNotFound", err)
	}
}

func TestOpen_MigratesToLatest(t *testing.T) {
	s := openTest(t)
	var v int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		t.Fatal(err)
	}
	if v != schemaVersion() {
		t.Fatalf("user_version = %d, want %d", v, schemaVersion())
	}
	// Re-running is a no-op.
	if err := migrate(context.Background(), s.db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestFixedPayments(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	when := time.Date(2025, time.September, 3, 9, 0, 0, 0, time.Local)

	p := model.Profile{Role: model.RoleStudent, FixedExpenses: []model.FixedExpense{
		{ID: "rent", Name: "Rent", Amount: d("8000")},
		{ID: "gym", Name: "Gym", Amount: d("900")},
	}}
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	for _, month := range []string{"2025-08", "2025-09", "2025-09"} {
		if err := s.SetFixedPaid(ctx, "rent", month, true, when); err != nil {
			t.Fatalf("SetFixedPaid %s: %v", month, err)
		}
	}
	if paid, err := s.FixedPaid(ctx, "rent", "2025-09"); err != nil || !paid {
		t.Fatalf("FixedPaid = %v, %v; want true", paid, err)
	}
	if paid, _ := s.FixedPaid(ctx, "gym", "2025-09"); paid {
		t.Fatal("gym reported paid")
	}
	months, err := s.PaidMonths(ctx, "rent")
	if err != nil || len(months) != 2 || months[0] != "2025-08" {
		t.Fatalf("PaidMonths = %v, %v", months, err)
	}

	if err := s.SetFixedPaid(ctx, "rent", "2025-09", false, when); err != nil {
		t.Fatal(err)
	}
	if paid, _ := s.FixedPaid(ctx, "rent", "2025-09"); paid {
		t.Fatal("unmarked month still paid")
	}

	// Dropping the expense from the profile drops its payments.
	p.FixedExpenses = p.FixedExpenses[1:]
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}
	if months, _ := s.PaidMonths(ctx, "rent"); len(months) != 0 {
		t.Fatalf("payments for removed expense = %v", months)
	}
}
