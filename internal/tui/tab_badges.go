package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/badge"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBadgesTab(cw int) string {
	t := theme.Active
	earned := a.snap.Profile.Gamification.Earned()

	earnedName := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	earnedDesc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	locked := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	inner := components.CardInnerWidth(cw)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Earned", Value: fmt.Sprintf("%d / %d", len(earned), len(badge.Catalog)), Color: t.Yellow},
		{Label: "Current streak", Value: fmt.Sprintf("%d", a.snap.Streak)},
		{Label: "Longest streak", Value: fmt.Sprintf("%d", a.snap.Context.LongestStreak)},
	}, cw))

	for _, cat := range badge.Categories {
		var lines []string
		have := 0
		for _, bd := range badge.ByCategory(cat) {
			if _, ok := earned[bd.ID]; ok {
				have++
				lines = append(lines, earnedName.Render(bd.Emoji+" "+bd.Name)+
					earnedDesc.Render("  "+truncStr(bd.Description, inner-lipgloss.Width(bd.Name)-5)))
				continue
			}
			lines = append(lines, locked.Render("·  "+bd.Name+"  "+truncStr(bd.Description, inner-len(bd.Name)-6)))
		}
		name := string(cat)
		title := fmt.Sprintf("%s%s (%d/%d)", strings.ToUpper(name[:1]), name[1:], have, len(lines))
		b.WriteString("\n")
		b.WriteString(components.ContentCard(title, strings.Join(lines, "\n"), cw))
	}
	return b.String()
}
