package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagDailyDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day spending against the limit",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDailyDays, "days", "n", 14, "Number of days to show")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if flagDailyDays <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}

		limit := snap.Budget.DailySpendingLimit
		days := snap.Daily.Range(pipeline.AddDays(snap.Now, -(flagDailyDays-1)), snap.Now)
		today := snap.Now.Format("2006-01-02")

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPENDING  Last %dd", flagDailyDays)))
		fmt.Println()

		rows := make([][]string, 0, len(days))
		series := make([]float64, len(days))
		for i, d := range days {
			date := d.Date.Format("2006-01-02")
			var status string
			switch {
			case !snap.First.IsZero() && d.Date.Before(snap.First):
				status = cli.Muted("before history")
			case d.Amount.GreaterThan(limit):
				status = cli.Bad("over")
			case date == today:
				status = cli.Warn("in progress")
			case d.Amount.IsZero():
				status = cli.Good("no spend")
			default:
				status = cli.Good("under")
			}
			rows = append(rows, []string{
				date,
				cli.FormatDayOfWeek(int(d.Date.Weekday())),
				money(d.Amount),
				money(limit.Sub(d.Amount)),
				status,
			})
			// Range is newest first; the sparkline reads left to right.
			series[len(days)-1-i], _ = d.Amount.Float64()
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Date", "Day", "Spent", "Left", "Status"},
			Rows:    rows,
		}))
		fmt.Printf("\n  Limit %s/day  %s\n", money(limit), cli.RenderSparkline(series))
		return nil
	})
}
