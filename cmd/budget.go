package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/spf13/cobra"
)

var flagBudgetMonth string

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Monthly needs/wants/savings split and daily limit",
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().StringVar(&flagBudgetMonth, "month", "", "Month as YYYY-MM (default current)")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}

		month := snap.Now
		if flagBudgetMonth != "" {
			month, err = time.ParseInLocation("2006-01", flagBudgetMonth, time.Local)
			if err != nil {
				return fmt.Errorf("--month: want YYYY-MM, got %q", flagBudgetMonth)
			}
		}

		p := snap.Profile
		b, err := budget.ForProfile(p, month)
		if err != nil {
			return err
		}
		split, err := budget.SplitFor(p.Role)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s  %s", month.Format("January 2006"), p.Role)))
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Bucket", "Share", "Amount"},
			Rows: [][]string{
				{"Needs", fmt.Sprintf("%d%%", split.Needs), money(b.Needs)},
				{"  fixed", "", money(b.FixedExpenses)},
				{"  flexible", "", money(b.FlexibleNeeds)},
				{"Wants", fmt.Sprintf("%d%%", split.Wants), money(b.Wants)},
				{"Savings", fmt.Sprintf("%d%%", split.Savings), money(b.Savings)},
				{"---"},
				{"Income", "100%", money(p.Income)},
			},
		}))
		fmt.Println()
		fmt.Printf("  Daily limit: %s (wants over %d days)\n", cli.Good(money(b.DailySpendingLimit)), b.DaysInMonth)
		if planned := model.TotalMonthlyContributions(snap.Goals); planned.IsPositive() {
			fmt.Printf("  Goal contributions: %s a month of %s savings\n", money(planned), money(b.Savings))
			if planned.GreaterThan(b.Savings) {
				fmt.Println(cli.Warn("  Planned goal contributions exceed the savings share"))
			}
		}
		if b.FixedExpenses.GreaterThan(b.Needs) {
			fmt.Println(cli.Warn("  Fixed expenses exceed the needs share of income"))
		}
		return nil
	})
}
