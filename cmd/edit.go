package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagEditAmount      string
	flagEditCategory    string
	flagEditDescription string
	flagEditDate        string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a logged expense",
	Long: "Changes the given fields of a transaction. The id may be any unique " +
		"prefix. Editing refreshes the streak but never takes badges away.",
	Example: `  finmate edit 3f2a --amount 180
  finmate edit 3f2a --date 2025-09-09`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditAmount, "amount", "", "New amount")
	editCmd.Flags().StringVarP(&flagEditCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVar(&flagEditDescription, "description", "", "New description")
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date (YYYY-MM-DD or RFC3339)")
	rootCmd.AddCommand(editCmd)
}

// lookupTransaction resolves an id prefix against the raw stored log, so
// records with malformed dates can still be found and repaired.
func lookupTransaction(ctx context.Context, st *store.Store, prefix string) (model.Transaction, error) {
	txs, err := st.ListTransactions(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	ids := make([]string, len(txs))
	for i, t := range txs {
		ids[i] = t.ID
	}
	id, err := resolveID("transaction", prefix, ids)
	if err != nil {
		return model.Transaction{}, err
	}
	return st.GetTransaction(ctx, id)
}

func runEdit(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, eng *engine.Engine, st *store.Store) error {
		tx, err := lookupTransaction(ctx, st, args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("amount") && !flags.Changed("category") &&
			!flags.Changed("description") && !flags.Changed("date") {
			return fmt.Errorf("nothing to change: pass --amount, --category, --description or --date")
		}
		if flags.Changed("amount") {
			tx.Amount, err = cli.ParseAmount(flagEditAmount)
			if err != nil {
				return err
			}
		}
		if flags.Changed("category") {
			tx.Category = flagEditCategory
		}
		if flags.Changed("description") {
			tx.Description = flagEditDescription
		}
		if flags.Changed("date") {
			at, err := pipeline.ParseDate(flagEditDate)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			tx.Date = pipeline.FormatDate(at)
		}

		res, err := eng.UpdateTransaction(ctx, tx)
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s: %s %s on %s\n", shortID(tx.ID), money(tx.Amount), tx.Category, tx.Date)
		printResult(res)
		return nil
	})
}
