package components

import (
	"fmt"

	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// UsageBar renders how much of a limit has been spent. The bar fills at
// 100% but the percentage keeps counting so overspending stays visible.
func UsageBar(label string, fraction float64, labelW, barWidth int) string {
	t := theme.Active
	color := t.ForUsage(fraction)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(clamp01(fraction)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", fraction*100))
}

// GoalBar renders progress toward a savings target. Unlike UsageBar,
// filling up is good, so the color warms from accent to green.
func GoalBar(fraction float64, barWidth int) string {
	t := theme.Active
	fraction = clamp01(fraction)

	color := t.Accent
	if fraction >= 1 {
		color = t.GreenBright
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(fraction) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", fraction*100))
}
