package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Tab indices, in components.Tabs order.
const (
	tabOverview = iota
	tabTransactions
	tabBadges
	tabGoals
)

const chartDays = 30

func fraction(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	f, _ := part.Div(whole).Float64()
	return f
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.snap
	limit := s.Budget.DailySpendingLimit
	var b strings.Builder

	// Row 1: headline numbers
	remainingColor := t.Green
	if s.Remaining.IsNegative() {
		remainingColor = t.Red
	}
	streakDelta := "best " + cli.FormatStreak(s.Context.LongestStreak) + " · " + s.StreakStop.String()
	metrics := []components.Metric{
		{Label: "Spent today", Value: a.money(s.TodaySpend), Delta: "limit " + a.money(limit) + "/day"},
		{Label: "Left today", Value: a.money(s.Remaining), Color: remainingColor},
		{Label: "Streak", Value: cli.FormatStreak(s.Streak), Delta: streakDelta, Color: t.Yellow},
		{Label: "This month", Value: a.money(s.MonthSpend), Delta: "wants " + a.money(s.Budget.Wants)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: usage bars
	inner := components.CardInnerWidth(cw)
	barW := inner - 8 - 6
	if barW < 10 {
		barW = 10
	}
	bars := components.UsageBar("Today", fraction(s.TodaySpend, limit), 6, barW) + "\n" +
		components.UsageBar("Month", fraction(s.MonthSpend, s.Budget.Wants), 6, barW)
	b.WriteString(components.ContentCard("Budget used", bars, cw))
	b.WriteString("\n")

	// Row 3: daily spending chart
	if !s.First.IsZero() {
		from := pipeline.AddDays(s.Now, -(chartDays - 1))
		if pipeline.DayOf(s.First) > pipeline.DayOf(from) {
			from = s.First
		}
		rows := s.Daily.Range(from, s.Now)
		values := make([]float64, len(rows))
		dates := make([]time.Time, len(rows))
		for i, r := range rows {
			// Range is newest first; the chart wants oldest on the left
			j := len(rows) - 1 - i
			values[j], _ = r.Amount.Float64()
			dates[j] = r.Date
		}
		limitF, _ := limit.Float64()
		chartH := 10
		if a.isCompactLayout() {
			chartH = 6
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Daily spending (%dd)", len(rows)),
			components.BarChart(values, chartDateLabels(dates), limitF, inner, chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: split and emergency fund
	splitCard := a.renderSplit()
	fundCard := a.renderFund()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Monthly split", splitCard, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Emergency fund", fundCard, cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Monthly split", splitCard, halves[0]),
			components.ContentCard("Emergency fund", fundCard, halves[1]),
		}))
	}

	if len(s.Skipped) > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf(" %d transaction(s) skipped for malformed dates: %s",
			len(s.Skipped), strings.Join(s.Skipped, ", "))))
	}

	return b.String()
}

func (a App) renderSplit() string {
	s := a.snap
	rows := [][2]string{
		{"Income", a.money(s.Profile.Income)},
		{"Needs", a.money(s.Budget.Needs)},
		{"  fixed", a.money(s.Budget.FixedExpenses)},
		{"  flexible", a.money(s.Budget.FlexibleNeeds)},
		{"Wants", a.money(s.Budget.Wants)},
		{"Savings", a.money(s.Budget.Savings)},
		{"Saved so far", a.money(s.Context.TotalSaved)},
	}
	return renderPairs(rows)
}

func (a App) renderFund() string {
	t := theme.Active
	fund := a.snap.Profile.EmergencyFund
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	rows := [][2]string{
		{"Balance", a.money(fund.Current)},
		{"Target", a.money(fund.Target)},
	}
	out := renderPairs(rows)
	if fund.Target.IsPositive() {
		out += "\n\n" + components.GoalBar(fraction(fund.Current, fund.Target), 24)
	} else {
		out += "\n\n" + muted.Render("No target set. Try `finmate fund target`.")
	}
	if expenses := a.snap.Profile.MonthlyExpenses(); expenses.IsPositive() {
		months := fund.Current.Div(expenses).StringFixed(1)
		out += "\n" + muted.Render("Covers "+months+" months of planned spending")
	}
	return out
}

func renderPairs(rows [][2]string) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	labelW := 0
	for _, r := range rows {
		if w := lipgloss.Width(r[0]); w > labelW {
			labelW = w
		}
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		pad := labelW - lipgloss.Width(r[0]) + 2
		lines[i] = labelStyle.Render(r[0]) + space.Render(strings.Repeat(" ", pad)) + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

// categoryRows turns per-category totals into table rows.
func (a App) categoryRows(totals []pipeline.CategoryTotal) [][2]string {
	rows := make([][2]string, len(totals))
	for i, c := range totals {
		rows[i] = [2]string{c.Category, a.money(c.Amount)}
	}
	return rows
}
