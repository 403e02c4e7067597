package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagAddCategory string
	flagAddDate     string
)

var addCmd = &cobra.Command{
	Use:   "add <amount> [description...]",
	Short: "Log an expense",
	Example: `  finmate add 250 lunch with team -c Food
  finmate add 1,200 --category Shopping --date 2025-09-08`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "Other", "Expense category")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "When it happened (YYYY-MM-DD or RFC3339, default now)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[0])
	if err != nil {
		return err
	}
	in := engine.NewTransaction{
		Amount:      amount,
		Category:    flagAddCategory,
		Description: strings.Join(args[1:], " "),
	}
	if flagAddDate != "" {
		in.Date, err = pipeline.ParseDate(flagAddDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		tx, res, err := eng.AddTransaction(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("  Added %s %s (%s)\n", money(tx.Amount), tx.Category, shortID(tx.ID))

		if !flagQuiet {
			if err := printLeftToday(ctx, eng); err != nil {
				return err
			}
		}
		printResult(res)
		return nil
	})
}

// printLeftToday reports what is left of today's allowance.
func printLeftToday(ctx context.Context, eng *engine.Engine) error {
	snap, err := eng.Snapshot(ctx)
	if err != nil {
		return err
	}
	if snap.Remaining.IsNegative() {
		fmt.Printf("  Over today's limit by %s\n", cli.Bad(money(snap.Remaining.Neg())))
		return nil
	}
	fmt.Printf("  Left today: %s of %s (%s)\n",
		cli.Good(money(snap.Remaining)), money(snap.Budget.DailySpendingLimit),
		snap.Now.Format(time.DateOnly))
	return nil
}
