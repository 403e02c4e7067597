package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/badge"
	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"

	"github.com/spf13/cobra"
)

var flagBadgesEarned bool

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Badge catalog with earned marks",
	RunE:  runBadges,
}

var badgesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate badge rules now and save any new awards",
	RunE:  runBadgesCheck,
}

func init() {
	badgesCmd.Flags().BoolVar(&flagBadgesEarned, "earned", false, "Show only earned badges")
	badgesCmd.AddCommand(badgesCheckCmd)
	rootCmd.AddCommand(badgesCmd)
}

func runBadges(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}
		earned := snap.Context.Earned

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("BADGES  %d of %d earned", len(earned), len(badge.Catalog))))

		for _, cat := range badge.Categories {
			var rows [][]string
			for _, b := range badge.ByCategory(cat) {
				_, ok := earned[b.ID]
				if flagBadgesEarned && !ok {
					continue
				}
				mark, name := "  ", cli.Muted(b.Name)
				if ok {
					mark, name = b.Emoji, cli.Good(b.Name)
				}
				rows = append(rows, []string{mark, name, b.Description})
			}
			if len(rows) == 0 {
				continue
			}
			fmt.Println()
			fmt.Printf("  %s\n", strings.ToUpper(string(cat)))
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"", "Badge", "How to earn"},
				Rows:    rows,
			}))
		}
		return nil
	})
}

func runBadgesCheck(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		res, err := eng.CheckBadges(ctx)
		if err != nil {
			return err
		}
		if len(res.Awarded) == 0 && !flagQuiet {
			fmt.Println("  No new badges.")
		}
		printResult(res)
		return nil
	})
}
