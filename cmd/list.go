package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagListDays     int
	flagListCategory string
	flagListLimit    int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Logged expenses, newest first",
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&flagListDays, "days", "n", 30, "Time window in days (0 for all)")
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Filter to category (substring match)")
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "l", 50, "Number of transactions to show")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}

		txs := pipeline.FilterByCategory(snap.Transactions, flagListCategory)
		if flagListDays > 0 {
			since := pipeline.StartOfDay(pipeline.AddDays(snap.Now, -(flagListDays - 1)))
			txs = pipeline.FilterByTime(txs, since, pipeline.StartOfDay(pipeline.AddDays(snap.Now, 1)))
		}
		if len(txs) == 0 {
			fmt.Println("\n  No transactions in the selected range.")
			return nil
		}

		sorted := make([]model.Transaction, len(txs))
		copy(sorted, txs)
		pipeline.SortNewestFirst(sorted)
		count := len(sorted)
		if flagListLimit > 0 && len(sorted) > flagListLimit {
			sorted = sorted[:flagListLimit]
		}

		title := "TRANSACTIONS  all time"
		if flagListDays > 0 {
			title = fmt.Sprintf("TRANSACTIONS  Last %dd", flagListDays)
		}
		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("%s (showing %d of %d)", title, len(sorted), count)))
		fmt.Println()

		rows := make([][]string, 0, len(sorted)+2)
		for _, tx := range sorted {
			day := "??"
			if at, err := pipeline.ParseDate(tx.Date); err == nil {
				day = at.Format("Jan 02 15:04")
			}
			rows = append(rows, []string{
				shortID(tx.ID),
				day,
				truncate(tx.Category, 14),
				truncate(tx.Description, 28),
				money(tx.Amount),
			})
		}
		total := decimal.Zero
		for _, tx := range txs {
			total = total.Add(tx.Amount)
		}
		rows = append(rows, []string{"---"}, []string{"", "", "", "Total", money(total)})

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "When", "Category", "Description", "Amount"},
			Rows:    rows,
		}))
		return nil
	})
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
