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

var (
	flagProfileRole   string
	flagProfileIncome string
	flagProfileFixed  []string
	flagProfileClear  bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your budget profile",
	Example: `  finmate profile
  finmate profile --income 60000
  finmate profile --fixed Rent=15000 --fixed Gym=1200`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&flagProfileRole, "role", "", "Change role")
	profileCmd.Flags().StringVar(&flagProfileIncome, "income", "", "Change monthly income")
	profileCmd.Flags().StringArrayVar(&flagProfileFixed, "fixed", nil, "Replace fixed expenses with Name=Amount (repeatable)")
	profileCmd.Flags().BoolVar(&flagProfileClear, "clear-fixed", false, "Remove all fixed expenses")
	rootCmd.AddCommand(profileCmd)
}

func profileUpdate(cmd *cobra.Command) (engine.ProfileUpdate, bool, error) {
	var u engine.ProfileUpdate
	changed := false

	if cmd.Flags().Changed("role") {
		role, ok := model.ParseRole(flagProfileRole)
		if !ok {
			return u, false, &budget.InvalidRoleError{Role: model.Role(flagProfileRole)}
		}
		u.Role = &role
		changed = true
	}
	if cmd.Flags().Changed("income") {
		income, err := cli.ParseAmount(flagProfileIncome)
		if err != nil {
			return u, false, fmt.Errorf("--income: %w", err)
		}
		u.Income = &income
		changed = true
	}
	if cmd.Flags().Changed("fixed") || flagProfileClear {
		fixed := []model.FixedExpense{}
		for _, f := range flagProfileFixed {
			fe, err := cli.ParseFixedExpense(f)
			if err != nil {
				return u, false, err
			}
			fixed = append(fixed, fe)
		}
		u.FixedExpenses = &fixed
		changed = true
	}
	return u, changed, nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	u, changed, err := profileUpdate(cmd)
	if err != nil {
		return err
	}

	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		if changed {
			p, err := eng.UpdateProfile(ctx, u)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(cli.RenderTitle("PROFILE UPDATED"))
			fmt.Println()
			printProfile(p)
			return nil
		}

		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}
		p := snap.Profile

		fmt.Println()
		fmt.Println(cli.RenderTitle("PROFILE"))
		fmt.Println()
		printProfile(p)
		fmt.Println()

		g := p.Gamification
		last := "never"
		if g.LastStreakDate != nil {
			last = g.LastStreakDate.Local().Format(time.DateOnly)
		}
		fmt.Print(cli.RenderKV([][2]string{
			{"Emergency fund", money(p.EmergencyFund.Current) + " of " + money(p.EmergencyFund.Target)},
			{"Stored streak", cli.FormatStreak(g.CurrentStreak) + " (updated " + last + ")"},
			{"Longest streak", cli.FormatStreak(g.LongestStreak)},
			{"Badges earned", fmt.Sprintf("%d", len(g.EarnedBadges))},
		}))
		return nil
	})
}
