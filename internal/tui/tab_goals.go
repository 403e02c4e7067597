package tui

import (
	"strings"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	goals := a.snap.Goals
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(goals) == 0 {
		return components.ContentCard("Goals",
			muted.Render("No savings goals yet. Create one with `finmate goal add \"Trip\" 20000`."), cw)
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)

	inner := components.CardInnerWidth(cw)
	barW := inner - 6
	if barW > 60 {
		barW = 60
	}

	var b strings.Builder
	for i, g := range goals {
		if i > 0 {
			b.WriteString("\n\n")
		}
		name := nameStyle.Render(truncStr(g.Name, inner/2))
		if g.Completed() {
			name += doneStyle.Render("  ✓ done")
		}
		b.WriteString(name)
		b.WriteString("\n")
		line := a.money(g.CurrentAmount) + " of " + a.money(g.TargetAmount)
		if g.MonthlyContribution.IsPositive() {
			line += ", " + a.money(g.MonthlyContribution) + "/month"
		}
		b.WriteString(muted.Render(line))
		b.WriteString("\n")
		b.WriteString(components.GoalBar(g.Progress(), barW))
	}
	b.WriteString("\n\n")
	b.WriteString(muted.Render("Planned: " + a.money(model.TotalMonthlyContributions(goals)) + " a month"))
	return components.ContentCard("Savings goals", b.String(), cw)
}
