package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/spf13/cobra"
)

var profilePaidCmd = &cobra.Command{
	Use:   "paid [expense]",
	Short: "Mark a fixed expense paid for this month, or list payment status",
	Long: "With an expense name or id prefix, toggles this month's paid mark.\n" +
		"Without one, lists every fixed expense with its status.",
	Example: `  finmate profile paid
  finmate profile paid rent`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfilePaid,
}

func init() {
	profileCmd.AddCommand(profilePaidCmd)
}

// matchFixed finds a fixed expense by case-insensitive name, falling back
// to an id prefix.
func matchFixed(expenses []model.FixedExpense, arg string) (model.FixedExpense, error) {
	arg = strings.TrimSpace(arg)
	for _, fe := range expenses {
		if strings.EqualFold(fe.Name, arg) {
			return fe, nil
		}
	}
	ids := make([]string, len(expenses))
	for i, fe := range expenses {
		ids[i] = fe.ID
	}
	id, err := resolveID("fixed expense", arg, ids)
	if err != nil {
		return model.FixedExpense{}, err
	}
	for _, fe := range expenses {
		if fe.ID == id {
			return fe, nil
		}
	}
	return model.FixedExpense{}, fmt.Errorf("no fixed expense matches %q", arg)
}

func runProfilePaid(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		payments, err := eng.FixedPayments(ctx)
		if err != nil {
			return err
		}
		if len(payments) == 0 {
			fmt.Println("\n  No fixed expenses. Add some with 'finmate profile --fixed Name=Amount'.")
			return nil
		}

		if len(args) == 1 {
			expenses := make([]model.FixedExpense, len(payments))
			for i, fp := range payments {
				expenses[i] = fp.Expense
			}
			fe, err := matchFixed(expenses, args[0])
			if err != nil {
				return err
			}
			paid, err := eng.ToggleFixedPaid(ctx, fe.ID)
			if err != nil {
				return err
			}
			count, err := eng.PaidCount(ctx, fe.ID)
			if err != nil {
				return err
			}
			state := cli.Warn("unpaid")
			if paid {
				state = cli.Good("paid")
			}
			fmt.Printf("  %s marked %s for %s (%d months paid)\n", fe.Name, state, eng.Now().Format("January 2006"), count)
			return nil
		}

		rows := make([][]string, 0, len(payments))
		for _, fp := range payments {
			status := cli.Warn("pending")
			if fp.PaidThisMonth {
				status = cli.Good("paid")
			}
			rows = append(rows, []string{
				truncate(fp.Expense.Name, 24),
				money(fp.Expense.Amount),
				status,
				fmt.Sprintf("%d", fp.PaidCount),
			})
		}
		fmt.Println()
		fmt.Println(cli.RenderTitle("FIXED EXPENSES  " + eng.Now().Format("January 2006")))
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Expense", "Amount", "This month", "Months paid"},
			Rows:    rows,
		}))
		return nil
	})
}
