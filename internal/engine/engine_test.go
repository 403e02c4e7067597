package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/clock"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/store"
	"github.com/theirongolddev/finmate/internal/streak"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for store.Store.
type memStore struct {
	profile *model.Profile
	txs     []model.Transaction
	goals   []model.Goal
	paid    map[string][]string
	saves   int
}

func (m *memStore) LoadProfile(context.Context) (model.Profile, error) {
	if m.profile == nil {
		return model.Profile{}, store.ErrNoProfile
	}
	p := *m.profile
	p.Gamification.EarnedBadges = append([]string(nil), p.Gamification.EarnedBadges...)
	return p, nil
}

func (m *memStore) SaveProfile(_ context.Context, p model.Profile) error {
	m.saves++
	m.profile = &p
	return nil
}

func (m *memStore) ListTransactions(context.Context) ([]model.Transaction, error) {
	return append([]model.Transaction(nil), m.txs...), nil
}

func (m *memStore) GetTransaction(_ context.Context, id string) (model.Transaction, error) {
	for _, t := range m.txs {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
}

func (m *memStore) AddTransaction(ctx context.Context, t model.Transaction) error {
	if _, err := m.GetTransaction(ctx, t.ID); err == nil {
		return fmt.Errorf("duplicate id %s", t.ID)
	}
	m.txs = append(m.txs, t)
	return nil
}

func (m *memStore) AddTransactions(ctx context.Context, txs []model.Transaction) (int, error) {
	n := 0
	for _, t := range txs {
		if err := m.AddTransaction(ctx, t); err == nil {
			n++
		}
	}
	return n, nil
}

func (m *memStore) UpdateTransaction(_ context.Context, t model.Transaction) error {
	for i := range m.txs {
		if m.txs[i].ID == t.ID {
			m.txs[i] = t
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) DeleteTransaction(_ context.Context, id string) error {
	for i := range m.txs {
		if m.txs[i].ID == id {
			m.txs = append(m.txs[:i], m.txs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) ListGoals(context.Context) ([]model.Goal, error) {
	return append([]model.Goal(nil), m.goals...), nil
}

func (m *memStore) GetGoal(_ context.Context, id string) (model.Goal, error) {
	for _, g := range m.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Goal{}, store.ErrNotFound
}

func (m *memStore) SaveGoal(_ context.Context, g model.Goal) error {
	for i := range m.goals {
		if m.goals[i].ID == g.ID {
			m.goals[i] = g
			return nil
		}
	}
	m.goals = append(m.goals, g)
	return nil
}

func (m *memStore) DeleteGoal(_ context.Context, id string) error {
	for i := range m.goals {
		if m.goals[i].ID == id {
			m.goals = append(m.goals[:i], m.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal %s: %w", id, store.ErrNotFound)
}

func (m *memStore) FixedPaid(_ context.Context, expenseID, month string) (bool, error) {
	for _, mo := range m.paid[expenseID] {
		if mo == month {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SetFixedPaid(_ context.Context, expenseID, month string, paid bool, _ time.Time) error {
	if m.paid == nil {
		m.paid = make(map[string][]string)
	}
	var kept []string
	for _, mo := range m.paid[expenseID] {
		if mo != month {
			kept = append(kept, mo)
		}
	}
	if paid {
		kept = append(kept, month)
	}
	m.paid[expenseID] = kept
	return nil
}

func (m *memStore) PaidMonths(_ context.Context, expenseID string) ([]string, error) {
	return append([]string(nil), m.paid[expenseID]...), nil
}

// Wednesday 10 September 2025, a 30-day month.
var testClock = clock.At(2025, time.September, 10)

func newTestEngine(t *testing.T, opts Options) (*Engine, *memStore) {
	t.Helper()
	m := &memStore{}
	if opts.Clock == nil {
		opts.Clock = testClock
	}
	return New(m, m, m, opts), m
}

func onboarded(t *testing.T, opts Options) (*Engine, *memStore) {
	t.Helper()
	e, m := newTestEngine(t, opts)
	if _, err := e.Onboard(context.Background(), model.RoleProfessional, decimal.NewFromInt(50000), nil); err != nil {
		t.Fatalf("Onboard: %v", err)
	}
	return e, m
}

func daysBefore(n int) time.Time {
	return testClock.T.AddDate(0, 0, -n)
}

func ids(bs []model.Badge) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func TestCheckBadges_NoProfile(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	if _, err := e.CheckBadges(context.Background()); !errors.Is(err, store.ErrNoProfile) {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}
}

func TestOnboard_DerivesBudget(t *testing.T) {
	e, m := newTestEngine(t, Options{})
	fixed := []model.FixedExpense{{Name: "Rent", Amount: decimal.NewFromInt(12000)}}

	p, err := e.Onboard(context.Background(), model.RoleProfessional, decimal.NewFromInt(50000), fixed)
	if err != nil {
		t.Fatalf("Onboard: %v", err)
	}
	want := map[string]int64{"needs": 25000, "wants": 15000, "savings": 10000, "limit": 500}
	got := map[string]decimal.Decimal{"needs": p.Needs, "wants": p.Wants, "savings": p.Savings, "limit": p.DailySpendingLimit}
	for k, v := range want {
		if !got[k].Equal(decimal.NewFromInt(v)) {
			t.Errorf("%s = %s, want %d", k, got[k], v)
		}
	}
	if p.FixedExpenses[0].ID == "" {
		t.Error("fixed expense id not assigned")
	}
	if m.profile == nil || !m.profile.DailySpendingLimit.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("stored profile = %+v", m.profile)
	}
}

func TestUpdateProfile_InvalidRoleChangesNothing(t *testing.T) {
	e, m := onboarded(t, Options{})
	before := *m.profile
	saves := m.saves

	bad := model.Role("Astronaut")
	_, err := e.UpdateProfile(context.Background(), ProfileUpdate{Role: &bad})
	var roleErr *budget.InvalidRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("err = %v, want *InvalidRoleError", err)
	}
	if m.saves != saves || m.profile.Role != before.Role {
		t.Fatal("invalid role update was persisted")
	}
}

func TestUpdateProfile_RoleChangeRecomputes(t *testing.T) {
	e, _ := onboarded(t, Options{})
	student := model.RoleStudent

	p, err := e.UpdateProfile(context.Background(), ProfileUpdate{Role: &student})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	// 30% wants of 50000 is 15000 for both roles; needs differ.
	if !p.Needs.Equal(decimal.NewFromInt(30000)) || !p.Savings.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("student split = %s/%s/%s", p.Needs, p.Wants, p.Savings)
	}
}

func TestAddTransaction_AwardsOnce(t *testing.T) {
	e, m := onboarded(t, Options{})
	ctx := context.Background()

	_, res, err := e.AddTransaction(ctx, NewTransaction{Amount: decimal.NewFromInt(120), Category: "Food"})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	want := []string{"first_saver", "ten_percent_club", "twenty_percent_pro"}
	if got := ids(res.Awarded); !reflect.DeepEqual(got, want) {
		t.Fatalf("awarded = %v, want %v", got, want)
	}
	if res.Streak != 1 || m.profile.Gamification.CurrentStreak != 1 {
		t.Fatalf("streak = %d (stored %d), want 1", res.Streak, m.profile.Gamification.CurrentStreak)
	}

	_, res, err = e.AddTransaction(ctx, NewTransaction{Amount: decimal.NewFromInt(50), Category: "Transport"})
	if err != nil {
		t.Fatalf("second AddTransaction: %v", err)
	}
	if len(res.Awarded) != 0 {
		t.Fatalf("second add awarded %v again", ids(res.Awarded))
	}
	if n := len(m.profile.Gamification.EarnedBadges); n != 3 {
		t.Fatalf("earned = %d badges, want 3", n)
	}
}

func TestAddTransaction_RejectsNegative(t *testing.T) {
	e, m := onboarded(t, Options{})
	_, _, err := e.AddTransaction(context.Background(), NewTransaction{Amount: decimal.NewFromInt(-5)})
	if !errors.Is(err, budget.ErrNegativeAmount) {
		t.Fatalf("err = %v, want ErrNegativeAmount", err)
	}
	if len(m.txs) != 0 {
		t.Fatal("negative transaction stored")
	}
}

func TestSnapshot_YesterdayOverLimit(t *testing.T) {
	e, m := onboarded(t, Options{})
	m.txs = []model.Transaction{{ID: "y", Amount: decimal.NewFromInt(600), Category: "Food", Date: pipeline.FormatDate(daysBefore(1))}}

	snap, err := e.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Streak != 1 || snap.StreakStop != streak.StopOverLimit {
		t.Fatalf("streak = %d (%v), want 1 (%v)", snap.Streak, snap.StreakStop, streak.StopOverLimit)
	}
	if !snap.TodaySpend.IsZero() || !snap.Remaining.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("today = %s remaining = %s", snap.TodaySpend, snap.Remaining)
	}
}

func TestSnapshot_EmptyLog(t *testing.T) {
	e, _ := onboarded(t, Options{})
	snap, err := e.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Streak != 0 || snap.StreakStop != streak.StopNoHistory {
		t.Fatalf("streak = %d (%v), want 0 (%v)", snap.Streak, snap.StreakStop, streak.StopNoHistory)
	}
}

func TestCheckBadges_Malformed(t *testing.T) {
	seed := func(m *memStore) {
		m.txs = []model.Transaction{
			{ID: "ok", Amount: decimal.NewFromInt(10), Category: "Food", Date: pipeline.FormatDate(testClock.T)},
			{ID: "broken", Amount: decimal.NewFromInt(10), Category: "Food", Date: "yesterday-ish"},
		}
	}

	t.Run("surfaced by default", func(t *testing.T) {
		e, m := onboarded(t, Options{})
		seed(m)
		saves := m.saves
		_, err := e.CheckBadges(context.Background())
		var mErr *pipeline.MalformedTransactionError
		if !errors.As(err, &mErr) || mErr.TransactionID != "broken" {
			t.Fatalf("err = %v, want malformed error for 'broken'", err)
		}
		if m.saves != saves {
			t.Fatal("state persisted despite malformed input")
		}
	})

	t.Run("skipped when configured", func(t *testing.T) {
		e, m := onboarded(t, Options{SkipMalformed: true})
		seed(m)
		res, err := e.CheckBadges(context.Background())
		if err != nil {
			t.Fatalf("CheckBadges: %v", err)
		}
		if !reflect.DeepEqual(res.Skipped, []string{"broken"}) {
			t.Fatalf("skipped = %v, want [broken]", res.Skipped)
		}
		if res.Streak != 1 {
			t.Fatalf("streak = %d, want 1", res.Streak)
		}
	})
}

func TestDeleteTransaction_KeepsBadges(t *testing.T) {
	e, m := onboarded(t, Options{})
	ctx := context.Background()

	tx, _, err := e.AddTransaction(ctx, NewTransaction{Amount: decimal.NewFromInt(100), Category: "Food"})
	if err != nil {
		t.Fatal(err)
	}
	earned := len(m.profile.Gamification.EarnedBadges)

	res, err := e.DeleteTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if res.Streak != 0 {
		t.Errorf("streak after emptying the log = %d, want 0", res.Streak)
	}
	if res.LongestStreak != 1 {
		t.Errorf("longest = %d, want 1", res.LongestStreak)
	}
	if got := len(m.profile.Gamification.EarnedBadges); got != earned {
		t.Errorf("earned badges %d -> %d; removal must not revoke", earned, got)
	}
	if _, err := e.DeleteTransaction(ctx, tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateTransaction_RejectsBadDate(t *testing.T) {
	e, m := onboarded(t, Options{})
	m.txs = []model.Transaction{{ID: "a", Amount: decimal.NewFromInt(10), Category: "Food", Date: "2025-09-10"}}

	_, err := e.UpdateTransaction(context.Background(), model.Transaction{ID: "a", Amount: decimal.NewFromInt(10), Date: "soon"})
	if !IsMalformed(err) {
		t.Fatalf("err = %v, want malformed date error", err)
	}
	if m.txs[0].Date != "2025-09-10" {
		t.Fatal("bad date stored")
	}
}

func TestUpdateTransaction_OverLimitBreaksStreak(t *testing.T) {
	e, m := onboarded(t, Options{})
	m.txs = []model.Transaction{
		{ID: "a", Amount: decimal.NewFromInt(100), Category: "Food", Date: pipeline.FormatDate(daysBefore(2))},
		{ID: "b", Amount: decimal.NewFromInt(100), Category: "Food", Date: pipeline.FormatDate(daysBefore(1))},
	}
	ctx := context.Background()
	if res, err := e.CheckBadges(ctx); err != nil || res.Streak != 3 {
		t.Fatalf("initial streak = %d, %v; want 3", res.Streak, err)
	}

	edited := m.txs[1]
	edited.Amount = decimal.NewFromInt(900)
	res, err := e.UpdateTransaction(ctx, edited)
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if res.Streak != 1 || res.LongestStreak != 3 {
		t.Fatalf("streak=%d longest=%d, want 1/3", res.Streak, res.LongestStreak)
	}
}

func TestFund(t *testing.T) {
	e, _ := onboarded(t, Options{})
	ctx := context.Background()

	if _, err := e.Withdraw(ctx, decimal.NewFromInt(1), ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("withdraw from empty fund err = %v, want ErrInsufficientFunds", err)
	}
	if _, err := e.Deposit(ctx, decimal.Zero, ""); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero deposit err = %v, want ErrInvalidAmount", err)
	}

	if _, err := e.Deposit(ctx, decimal.NewFromInt(130000), "bonus"); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	fund, err := e.Withdraw(ctx, decimal.NewFromInt(10000), "repair")
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if !fund.Current.Equal(decimal.NewFromInt(120000)) || len(fund.History) != 2 {
		t.Fatalf("fund = %s with %d entries", fund.Current, len(fund.History))
	}

	if fund, err = e.SetFundTarget(ctx, decimal.NewFromInt(240000)); err != nil || !fund.Target.Equal(decimal.NewFromInt(240000)) {
		t.Fatalf("SetFundTarget = %+v, %v", fund, err)
	}

	// 120000 covers 3 months of 40000 planned expenses.
	res, err := e.CheckBadges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, id := range ids(res.Awarded) {
		if id == "emergency_ready" {
			found = true
		}
		if id == "fortress_built" {
			t.Fatal("fortress_built needs 6 months")
		}
	}
	if !found {
		t.Fatalf("awarded = %v, want emergency_ready", ids(res.Awarded))
	}
}

func TestGoals_CompletionEarnsGoalGetter(t *testing.T) {
	e, _ := onboarded(t, Options{})
	ctx := context.Background()

	g, err := e.AddGoal(ctx, "Bike", decimal.NewFromInt(3000), decimal.Zero)
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if _, err := e.Contribute(ctx, g.ID, decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative contribution err = %v", err)
	}
	if g, err = e.Contribute(ctx, g.ID, decimal.NewFromInt(3000)); err != nil || !g.Completed() {
		t.Fatalf("Contribute = %+v, %v", g, err)
	}
	if g, err = e.Contribute(ctx, g.ID, decimal.NewFromInt(500)); err != nil || !g.CurrentAmount.Equal(g.TargetAmount) {
		t.Fatalf("over-contribution current = %s, want capped at %s (%v)", g.CurrentAmount, g.TargetAmount, err)
	}
	if len(g.Contributions) != 2 {
		t.Fatalf("contributions = %d, want 2", len(g.Contributions))
	}
	if _, err := e.Contribute(ctx, "missing", decimal.NewFromInt(1)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing goal err = %v, want ErrNotFound", err)
	}

	res, err := e.CheckBadges(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := ids(res.Awarded)
	if len(got) == 0 || got[0] != "goal_getter" {
		t.Fatalf("awarded = %v, want goal_getter", got)
	}
}

func TestImportTransactions(t *testing.T) {
	e, m := onboarded(t, Options{})
	ctx := context.Background()
	batch := []model.Transaction{
		{ID: "imp-1", Amount: decimal.NewFromInt(40), Category: "Food", Date: "2025-09-08"},
		{Amount: decimal.NewFromInt(60), Category: "Food", Date: "2025-09-09"},
	}

	added, res, err := e.ImportTransactions(ctx, batch)
	if err != nil {
		t.Fatalf("ImportTransactions: %v", err)
	}
	if added != 2 || len(m.txs) != 2 || m.txs[1].ID == "" {
		t.Fatalf("added=%d stored=%+v", added, m.txs)
	}
	if res.Streak != 3 {
		t.Fatalf("streak = %d, want 3", res.Streak)
	}

	added, res, err = e.ImportTransactions(ctx, batch[:1])
	if err != nil || added != 0 || res.Awarded != nil {
		t.Fatalf("re-import = %d, %+v, %v; want nothing", added, res, err)
	}
}

func TestAddTransaction_NoProfileStoresNothing(t *testing.T) {
	e, m := newTestEngine(t, Options{})
	ctx := context.Background()

	_, _, err := e.AddTransaction(ctx, NewTransaction{Amount: decimal.NewFromInt(10), Category: "Food"})
	if !errors.Is(err, store.ErrNoProfile) {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}
	batch := []model.Transaction{{ID: "x", Amount: decimal.NewFromInt(10), Category: "Food", Date: "2025-09-09"}}
	if _, _, err := e.ImportTransactions(ctx, batch); !errors.Is(err, store.ErrNoProfile) {
		t.Fatalf("import err = %v, want ErrNoProfile", err)
	}
	if len(m.txs) != 0 {
		t.Fatalf("stored %d transactions without a profile", len(m.txs))
	}
}

func TestUpdateGoal(t *testing.T) {
	e, _ := onboarded(t, Options{})
	ctx := context.Background()

	g, err := e.AddGoal(ctx, "Trip", decimal.NewFromInt(10000), decimal.NewFromInt(1000))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Contribute(ctx, g.ID, decimal.NewFromInt(4000)); err != nil {
		t.Fatal(err)
	}

	name := "  Goa trip "
	target := decimal.NewFromInt(3000)
	g, err = e.UpdateGoal(ctx, g.ID, GoalUpdate{Name: &name, Target: &target})
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if g.Name != "Goa trip" || !g.TargetAmount.Equal(target) {
		t.Fatalf("goal = %q target %s", g.Name, g.TargetAmount)
	}
	if !g.CurrentAmount.Equal(target) || !g.Completed() {
		t.Fatalf("current = %s, want capped at %s", g.CurrentAmount, target)
	}
	if !g.MonthlyContribution.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("monthly = %s, want kept at 1000", g.MonthlyContribution)
	}

	zero := decimal.Zero
	if _, err := e.UpdateGoal(ctx, g.ID, GoalUpdate{Target: &zero}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero target err = %v, want ErrInvalidAmount", err)
	}
	if _, err := e.UpdateGoal(ctx, "missing", GoalUpdate{Name: &name}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing goal err = %v, want ErrNotFound", err)
	}
}

func TestDeleteGoal(t *testing.T) {
	e, m := onboarded(t, Options{})
	ctx := context.Background()

	keep, _ := e.AddGoal(ctx, "Bike", decimal.NewFromInt(3000), decimal.NewFromInt(500))
	drop, _ := e.AddGoal(ctx, "Phone", decimal.NewFromInt(2000), decimal.NewFromInt(250))

	if err := e.DeleteGoal(ctx, drop.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if len(m.goals) != 1 || m.goals[0].ID != keep.ID {
		t.Fatalf("goals = %+v, want only %s", m.goals, keep.ID)
	}
	if err := e.DeleteGoal(ctx, drop.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	snap, err := e.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := model.TotalMonthlyContributions(snap.Goals); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("monthly total = %s, want 500", got)
	}
}

func TestAddGoal_RejectsNegativeMonthly(t *testing.T) {
	e, m := onboarded(t, Options{})
	if _, err := e.AddGoal(context.Background(), "Car", decimal.NewFromInt(1), decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if len(m.goals) != 0 {
		t.Fatal("goal stored")
	}
}

func TestToggleFixedPaid(t *testing.T) {
	e, m := newTestEngine(t, Options{})
	ctx := context.Background()
	fixed := []model.FixedExpense{{Name: "Rent", Amount: decimal.NewFromInt(12000)}}
	p, err := e.Onboard(ctx, model.RoleProfessional, decimal.NewFromInt(50000), fixed)
	if err != nil {
		t.Fatal(err)
	}
	rent := p.FixedExpenses[0].ID
	m.paid = map[string][]string{rent: {"2025-08"}}

	paid, err := e.ToggleFixedPaid(ctx, rent)
	if err != nil || !paid {
		t.Fatalf("first toggle = %v, %v; want paid", paid, err)
	}
	if n, _ := e.PaidCount(ctx, rent); n != 2 {
		t.Fatalf("PaidCount = %d, want 2", n)
	}
	list, err := e.FixedPayments(ctx)
	if err != nil || len(list) != 1 || !list[0].PaidThisMonth || list[0].PaidCount != 2 {
		t.Fatalf("FixedPayments = %+v, %v", list, err)
	}

	if paid, _ = e.ToggleFixedPaid(ctx, rent); paid {
		t.Fatal("second toggle left the month paid")
	}
	if months := m.paid[rent]; len(months) != 1 || months[0] != "2025-08" {
		t.Fatalf("months = %v, want only 2025-08", months)
	}

	if _, err := e.ToggleFixedPaid(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown expense err = %v, want ErrNotFound", err)
	}

	// Replacing the list keeps the id of a same-named expense.
	replaced := []model.FixedExpense{{Name: "rent", Amount: decimal.NewFromInt(13000)}, {Name: "Gym", Amount: decimal.NewFromInt(900)}}
	p, err = e.UpdateProfile(ctx, ProfileUpdate{FixedExpenses: &replaced})
	if err != nil {
		t.Fatal(err)
	}
	if p.FixedExpenses[0].ID != rent || p.FixedExpenses[1].ID == "" || p.FixedExpenses[1].ID == rent {
		t.Fatalf("ids = %s, %s; want rent kept and a fresh gym id", p.FixedExpenses[0].ID, p.FixedExpenses[1].ID)
	}
}
