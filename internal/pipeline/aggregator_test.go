package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

func at(day, hour int) time.Time {
	return time.Date(2025, time.September, day, hour, 0, 0, 0, time.Local)
}

func tx(id string, amount int64, when time.Time) model.Transaction {
	return model.Transaction{
		ID:       id,
		Amount:   decimal.NewFromInt(amount),
		Category: "Food",
		Date:     FormatDate(when),
	}
}

func TestAggregateByDay_SumsSameDay(t *testing.T) {
	txs := []model.Transaction{
		tx("a", 120, at(3, 8)),
		tx("b", 80, at(3, 21)),
		tx("c", 300, at(4, 12)),
	}

	daily, err := AggregateByDay(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("len(daily) = %d, want 2", len(daily))
	}
	if got := daily.On(at(3, 0)); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Sep 3 = %s, want 200", got)
	}
	if got := daily.On(at(4, 23)); !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Sep 4 = %s, want 300", got)
	}
	if got := daily.On(at(5, 12)); !got.IsZero() {
		t.Errorf("Sep 5 (no transactions) = %s, want 0", got)
	}
}

func TestAggregateByDay_ConservesTotal(t *testing.T) {
	txs := []model.Transaction{
		{ID: "1", Amount: decimal.RequireFromString("10.25"), Date: FormatDate(at(1, 9))},
		{ID: "2", Amount: decimal.RequireFromString("0"), Date: FormatDate(at(1, 10))},
		{ID: "3", Amount: decimal.RequireFromString("999.99"), Date: FormatDate(at(7, 18))},
		{ID: "4", Amount: decimal.RequireFromString("41.76"), Date: "2025-09-07"},
		{ID: "5", Amount: decimal.RequireFromString("3"), Date: "2025-09-12T23:59:59"},
	}
	want := decimal.Zero
	for _, tx := range txs {
		want = want.Add(tx.Amount)
	}

	daily, err := AggregateByDay(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := daily.Total(); !got.Equal(want) {
		t.Fatalf("Total() = %s, want %s", got, want)
	}
}

func TestAggregateByDay_Idempotent(t *testing.T) {
	txs := []model.Transaction{tx("a", 50, at(2, 9)), tx("b", 70, at(2, 10))}

	first, err := AggregateByDay(txs)
	if err != nil {
		t.Fatal(err)
	}
	second, err := AggregateByDay(txs)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("len differs: %d vs %d", len(first), len(second))
	}
	for k, v := range first {
		if !second[k].Equal(v) {
			t.Errorf("day %s: %s vs %s", k, v, second[k])
		}
	}
}

func TestAggregateByDay_Empty(t *testing.T) {
	daily, err := AggregateByDay(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daily) != 0 {
		t.Fatalf("len(daily) = %d, want 0", len(daily))
	}
	if _, ok := daily.First(); ok {
		t.Fatal("First() on empty map should report false")
	}
}

func TestAggregateByDay_MalformedDate(t *testing.T) {
	txs := []model.Transaction{
		tx("good", 10, at(1, 9)),
		{ID: "bad-42", Amount: decimal.NewFromInt(5), Date: "last tuesday"},
	}

	daily, err := AggregateByDay(txs)
	if daily != nil {
		t.Errorf("expected no partial result, got %v", daily)
	}
	var mErr *MalformedTransactionError
	if !errors.As(err, &mErr) {
		t.Fatalf("err = %v, want *MalformedTransactionError", err)
	}
	if mErr.TransactionID != "bad-42" {
		t.Errorf("TransactionID = %q, want bad-42", mErr.TransactionID)
	}
}

func TestAggregateByDay_EmptyDateIsMalformed(t *testing.T) {
	_, err := AggregateByDay([]model.Transaction{{ID: "x", Amount: decimal.NewFromInt(1)}})
	if !errors.Is(err, ErrEmptyDate) {
		t.Fatalf("err = %v, want ErrEmptyDate", err)
	}
}

func TestDailySpend_FirstAndRange(t *testing.T) {
	daily, err := AggregateByDay([]model.Transaction{
		tx("a", 10, at(5, 9)),
		tx("b", 20, at(3, 9)),
	})
	if err != nil {
		t.Fatal(err)
	}

	first, ok := daily.First()
	if !ok || !first.Equal(StartOfDay(at(3, 0))) {
		t.Fatalf("First() = %v, %v; want Sep 3 midnight", first, ok)
	}

	rows := daily.Range(at(3, 15), at(6, 1))
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	if !rows[0].Date.Equal(StartOfDay(at(6, 0))) {
		t.Errorf("rows[0] = %v, want most recent day first", rows[0].Date)
	}
	if !rows[2].Amount.IsZero() {
		t.Errorf("gap day Sep 4 = %s, want 0", rows[2].Amount)
	}
}

func TestCumulativeSavings_SkipsTodayAndOverspend(t *testing.T) {
	daily := DailySpend{
		DayOf(at(1, 0)):  decimal.NewFromInt(200), // saves 300
		DayOf(at(2, 0)):  decimal.NewFromInt(700), // overspent, saves 0
		DayOf(at(3, 0)):  decimal.NewFromInt(500), // exactly at limit
		DayOf(at(10, 0)): decimal.NewFromInt(0),   // today, excluded
	}
	got := CumulativeSavings(daily, decimal.NewFromInt(500), at(10, 18))
	if !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("CumulativeSavings = %s, want 300", got)
	}
}

func TestMonthSpend(t *testing.T) {
	daily := DailySpend{
		"2025-08-31": decimal.NewFromInt(1000),
		"2025-09-01": decimal.NewFromInt(10),
		"2025-09-30": decimal.NewFromInt(5),
	}
	if got := MonthSpend(daily, at(15, 0)); !got.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("MonthSpend = %s, want 15", got)
	}
}

func TestSortNewestFirst_MalformedLast(t *testing.T) {
	txs := []model.Transaction{
		tx("old", 1, at(1, 9)),
		{ID: "bad", Date: "??"},
		tx("new", 1, at(9, 9)),
	}
	SortNewestFirst(txs)
	if txs[0].ID != "new" || txs[1].ID != "old" || txs[2].ID != "bad" {
		t.Fatalf("order = [%s %s %s], want [new old bad]", txs[0].ID, txs[1].ID, txs[2].ID)
	}
}

func TestAggregateCategories(t *testing.T) {
	txs := []model.Transaction{
		{ID: "1", Category: "Food", Amount: decimal.NewFromInt(40)},
		{ID: "2", Category: "Transport", Amount: decimal.NewFromInt(90)},
		{ID: "3", Category: "Food", Amount: decimal.NewFromInt(60)},
	}
	got := AggregateCategories(txs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Category != "Food" || !got[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("got[0] = %+v, want Food 100", got[0])
	}
}

func TestParseDate_Layouts(t *testing.T) {
	for _, s := range []string{
		"2025-09-03T10:00:00Z",
		"2025-09-03T10:00:00.123+05:30",
		"2025-09-03T10:00:00",
		"2025-09-03 10:00:00",
		"2025-09-03",
	} {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q): %v", s, err)
		}
	}
	if _, err := ParseDate("09/03/2025"); err == nil {
		t.Error("ParseDate accepted an unsupported layout")
	}
}

// inSantiago switches the local zone to one where DST starts at midnight
// (2025-09-07 00:00 does not exist there).
func inSantiago(t *testing.T) {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestCalendarDays_MidnightDSTGap(t *testing.T) {
	inSantiago(t)

	start := StartOfDay(at(7, 15))
	if DayOf(start) != "2025-09-07" {
		t.Fatalf("StartOfDay(Sep 7) falls on %s", DayOf(start))
	}
	if got := DayKey("2025-09-07").Time(); DayOf(got) != "2025-09-07" {
		t.Errorf("DayKey.Time() falls on %s", DayOf(got))
	}
	if d, err := ParseDate("2025-09-07"); err != nil || DayOf(d) != "2025-09-07" {
		t.Errorf("ParseDate(2025-09-07) = %v, %v", d, err)
	}
	if got := AddDays(at(8, 9), -1); DayOf(got) != "2025-09-07" {
		t.Errorf("AddDays(Sep 8, -1) falls on %s", DayOf(got))
	}

	daily := DailySpend{"2025-09-07": decimal.NewFromInt(40)}
	rows := daily.Range(at(5, 9), at(9, 9))
	want := []DayKey{"2025-09-09", "2025-09-08", "2025-09-07", "2025-09-06", "2025-09-05"}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for i, r := range rows {
		if DayOf(r.Date) != want[i] {
			t.Errorf("rows[%d] = %s, want %s", i, DayOf(r.Date), want[i])
		}
	}
	if !rows[2].Amount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Sep 7 amount = %s, want 40", rows[2].Amount)
	}
	if first, _ := daily.First(); DayOf(first) != "2025-09-07" {
		t.Errorf("First() falls on %s", DayOf(first))
	}
}
