package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"today"},
	Short:   "Today's spending, limit and streak",
	RunE:    runToday,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runToday(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}

		limit := snap.Budget.DailySpendingLimit
		remaining := money(snap.Remaining)
		if snap.Remaining.IsNegative() {
			remaining = cli.Bad(remaining + " over")
		} else {
			remaining = cli.Good(remaining)
		}

		usedToday := 0.0
		if limit.IsPositive() {
			usedToday, _ = snap.TodaySpend.Div(limit).Float64()
		}
		usedMonth := 0.0
		if snap.Budget.Wants.IsPositive() {
			usedMonth, _ = snap.MonthSpend.Div(snap.Budget.Wants).Float64()
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("FINMATE  " + cli.FormatDay(snap.Now)))
		fmt.Println()
		fmt.Print(cli.RenderKV([][2]string{
			{"Spent today", money(snap.TodaySpend)},
			{"Daily limit", money(limit)},
			{"Left today", remaining},
			{"Today", cli.RenderProgressBar(usedToday, 30)},
			{"This month", money(snap.MonthSpend) + " of " + money(snap.Budget.Wants) + " wants"},
			{"Month", cli.RenderProgressBar(usedMonth, 30)},
			{"Streak", cli.Streak(cli.FormatStreak(snap.Streak)) + cli.Muted("  ("+snap.StreakStop.String()+")")},
			{"Longest", cli.FormatStreak(snap.Context.LongestStreak)},
			{"Saved so far", money(snap.Context.TotalSaved)},
			{"Badges", fmt.Sprintf("%d earned", len(snap.Profile.Gamification.EarnedBadges))},
		}))

		if len(snap.Skipped) > 0 {
			fmt.Println()
			fmt.Println(cli.Warn(fmt.Sprintf("  %d transaction(s) skipped for malformed dates", len(snap.Skipped))))
		}
		return nil
	})
}
