package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete logged expenses",
	Long:    "Deletes transactions by id or unique id prefix. Earned badges are kept.",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, eng *engine.Engine, st *store.Store) error {
		var last engine.Result
		for _, arg := range args {
			tx, err := lookupTransaction(ctx, st, arg)
			if err != nil {
				return err
			}
			last, err = eng.DeleteTransaction(ctx, tx.ID)
			if err != nil {
				return err
			}
			fmt.Printf("  Deleted %s (%s %s)\n", shortID(tx.ID), money(tx.Amount), tx.Category)
		}
		printResult(last)
		return nil
	})
}
