package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/streak"

	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Current and longest under-budget streak",
	RunE:  runStreak,
}

func init() {
	rootCmd.AddCommand(streakCmd)
}

func runStreak(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}
		c := snap.Context

		weekend := cli.Muted("not yet")
		if c.HasWeekendUnderBudget {
			weekend = cli.Good("yes")
		}
		since := "-"
		if !snap.First.IsZero() {
			since = cli.FormatDay(snap.First)
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("STREAK"))
		fmt.Println()
		fmt.Print(cli.RenderKV([][2]string{
			{"Current", cli.Streak(cli.FormatStreak(snap.Streak))},
			{"Longest", cli.FormatStreak(c.LongestStreak)},
			{"Ended by", stopText(snap.StreakStop)},
			{"Tracking since", since},
			{"Zero-spend run", cli.FormatStreak(c.ConsecutiveZeroSpendDays)},
			{"Last weekend under", weekend},
		}))

		if snap.StreakStop == streak.StopTodayOverLimit {
			fmt.Println()
			fmt.Println(cli.Bad(fmt.Sprintf("  Today is %s over the limit; the streak restarts tomorrow.",
				money(snap.Remaining.Neg()))))
		}
		return nil
	})
}

func stopText(r streak.StopReason) string {
	switch r {
	case streak.StopTodayOverLimit, streak.StopOverLimit:
		return cli.Bad(r.String())
	case streak.StopLookbackCap:
		return cli.Good(r.String())
	}
	return cli.Muted(r.String())
}
