package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Savings goals",
	RunE:    runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:     "add <name> <target>",
	Short:   "Create a savings goal",
	Example: `  finmate goal add "New laptop" 80000`,
	Args:    cobra.ExactArgs(2),
	RunE:    runGoalAdd,
}

var goalContributeCmd = &cobra.Command{
	Use:   "contribute <id> <amount>",
	Short: "Put money toward a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalContribute,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with progress",
	RunE:  runGoalList,
}

var goalEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Rename or retarget a goal",
	Example: `  finmate goal edit 3f2a --name "Gaming laptop" --target 95000
  finmate goal edit 3f2a --monthly 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalEdit,
}

var goalRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete goals",
	Long:    "Deletes goals and their contributions by id or unique id prefix. Earned badges are kept.",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runGoalRm,
}

var (
	flagGoalMonthly string
	flagGoalName    string
	flagGoalTarget  string
)

func init() {
	goalAddCmd.Flags().StringVar(&flagGoalMonthly, "monthly", "", "Planned contribution per month")
	goalEditCmd.Flags().StringVar(&flagGoalName, "name", "", "New name")
	goalEditCmd.Flags().StringVar(&flagGoalTarget, "target", "", "New target amount")
	goalEditCmd.Flags().StringVar(&flagGoalMonthly, "monthly", "", "New planned contribution per month")
	goalCmd.AddCommand(goalAddCmd, goalContributeCmd, goalListCmd, goalEditCmd, goalRmCmd)
	rootCmd.AddCommand(goalCmd)
}

func parseMonthly() (decimal.Decimal, error) {
	if flagGoalMonthly == "" {
		return decimal.Zero, nil
	}
	m, err := cli.ParseAmount(flagGoalMonthly)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--monthly: %w", err)
	}
	return m, nil
}

// lookupGoal resolves an id prefix against the stored goals.
func lookupGoal(ctx context.Context, eng *engine.Engine, prefix string) (model.Goal, error) {
	goals, err := eng.Goals(ctx)
	if err != nil {
		return model.Goal{}, err
	}
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	id, err := resolveID("goal", prefix, ids)
	if err != nil {
		return model.Goal{}, err
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Goal{}, fmt.Errorf("goal %s: %w", id, store.ErrNotFound)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("goal name is empty")
	}
	target, err := cli.ParseAmount(args[1])
	if err != nil {
		return err
	}
	monthly, err := parseMonthly()
	if err != nil {
		return err
	}
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		g, err := eng.AddGoal(ctx, name, target, monthly)
		if err != nil {
			return err
		}
		fmt.Printf("  Created goal %s %q, target %s\n", shortID(g.ID), g.Name, money(g.TargetAmount))
		if g.MonthlyContribution.IsPositive() {
			fmt.Printf("  Planning %s a month\n", money(g.MonthlyContribution))
		}
		return nil
	})
}

func runGoalContribute(cmd *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[1])
	if err != nil {
		return err
	}
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		g, err := lookupGoal(ctx, eng, args[0])
		if err != nil {
			return err
		}

		g, err = eng.Contribute(ctx, g.ID, amount)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %s of %s\n", g.Name, money(g.CurrentAmount), money(g.TargetAmount))
		fmt.Printf("  %s\n", cli.RenderProgressBar(g.Progress(), 24))
		if g.Completed() && !flagQuiet {
			fmt.Println(cli.Good("  Goal reached! Run 'finmate badges check' to claim the badge."))
		}
		return nil
	})
}

func runGoalList(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		goals, err := eng.Goals(ctx)
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			fmt.Println("\n  No goals yet. Create one with 'finmate goal add <name> <target>'.")
			return nil
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("GOALS"))
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "Goal", "Saved", "Target", "Monthly", "Progress"},
			Rows:    goalRows(goals),
		}))
		fmt.Println()
		fmt.Printf("  Planned contributions: %s a month\n", money(model.TotalMonthlyContributions(goals)))
		return nil
	})
}

func runGoalEdit(cmd *cobra.Command, args []string) error {
	var u engine.GoalUpdate
	if cmd.Flags().Changed("name") {
		name := strings.TrimSpace(flagGoalName)
		if name == "" {
			return fmt.Errorf("--name is empty")
		}
		u.Name = &name
	}
	if cmd.Flags().Changed("target") {
		target, err := cli.ParseAmount(flagGoalTarget)
		if err != nil {
			return fmt.Errorf("--target: %w", err)
		}
		u.Target = &target
	}
	if cmd.Flags().Changed("monthly") {
		monthly, err := parseMonthly()
		if err != nil {
			return err
		}
		u.Monthly = &monthly
	}
	if u.Name == nil && u.Target == nil && u.Monthly == nil {
		return fmt.Errorf("nothing to change: pass --name, --target or --monthly")
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		g, err := lookupGoal(ctx, eng, args[0])
		if err != nil {
			return err
		}
		if g, err = eng.UpdateGoal(ctx, g.ID, u); err != nil {
			return err
		}
		fmt.Printf("  %s %q: %s of %s, %s a month\n", shortID(g.ID), g.Name,
			money(g.CurrentAmount), money(g.TargetAmount), money(g.MonthlyContribution))
		return nil
	})
}

func runGoalRm(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		for _, arg := range args {
			g, err := lookupGoal(ctx, eng, arg)
			if err != nil {
				return err
			}
			if err := eng.DeleteGoal(ctx, g.ID); err != nil {
				return err
			}
			fmt.Printf("  Deleted goal %s %q\n", shortID(g.ID), g.Name)
		}
		return nil
	})
}

func goalRows(goals []model.Goal) [][]string {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			shortID(g.ID),
			truncate(g.Name, 24),
			money(g.CurrentAmount),
			money(g.TargetAmount),
			money(g.MonthlyContribution),
			cli.RenderProgressBar(g.Progress(), 16),
		})
	}
	return rows
}
