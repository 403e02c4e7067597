package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/logger"
	"github.com/theirongolddev/finmate/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagImportDryRun    bool
	flagImportMaxErrors int
)

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl|dir>",
	Short: "Bulk-load transactions from JSONL",
	Long: "Reads one JSON object per line with amount, category, date and optional " +
		"id and description. Bad lines are reported and skipped, never guessed at. " +
		"Ids already in the database are left alone, so re-importing is safe.",
	Example: `  {"amount": "250", "category": "Food", "date": "2025-09-08T13:00:00+05:30"}`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Parse and report without saving")
	importCmd.Flags().IntVar(&flagImportMaxErrors, "max-errors", 20, "Number of bad lines to list")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	res := source.ParsePath(args[0])
	if res.Err != nil {
		return fmt.Errorf("reading %s: %w", args[0], res.Err)
	}
	logger.Get().Infow("import parsed", "path", args[0],
		"transactions", len(res.Transactions), "bad_lines", res.ParseErrors)

	fmt.Printf("  Parsed %s transaction(s)", cli.FormatNumber(int64(len(res.Transactions))))
	if res.ParseErrors > 0 {
		fmt.Printf(", %s", cli.Warn(fmt.Sprintf("%d bad line(s)", res.ParseErrors)))
	}
	fmt.Println()
	for i, le := range res.Errors {
		if i == flagImportMaxErrors {
			fmt.Println(cli.Muted(fmt.Sprintf("    ... and %d more", len(res.Errors)-i)))
			break
		}
		fmt.Printf("    line %d: %s\n", le.Line, le.Reason)
	}

	if flagImportDryRun || len(res.Transactions) == 0 {
		return nil
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		added, result, err := eng.ImportTransactions(ctx, res.Transactions)
		if err != nil {
			return err
		}
		fmt.Printf("  Imported %s new, %s already present\n",
			cli.Good(cli.FormatNumber(int64(added))),
			cli.FormatNumber(int64(len(res.Transactions)-added)))
		if added > 0 {
			printResult(result)
		}
		return nil
	})
}
