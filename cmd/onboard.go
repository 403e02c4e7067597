package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/store"
	"github.com/theirongolddev/finmate/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagOnboardRole   string
	flagOnboardIncome string
	flagOnboardFixed  []string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create or redo your budget profile",
	Long: "Asks for your role, monthly income and fixed expenses. Pass --role " +
		"and --income to skip the form. Running it again keeps your emergency " +
		"fund, streak and badges.",
	Example: `  finmate onboard
  finmate onboard --role Professional --income 50000 --fixed Rent=12000 --fixed Internet=800`,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().StringVar(&flagOnboardRole, "role", "", "Student, Professional or Housewife")
	onboardCmd.Flags().StringVar(&flagOnboardIncome, "income", "", "Monthly income")
	onboardCmd.Flags().StringArrayVar(&flagOnboardFixed, "fixed", nil, "Fixed expense as Name=Amount (repeatable)")
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		vals, err := onboardValues(ctx, cmd, eng)
		if err != nil {
			return err
		}
		role, income, fixed, err := vals.Parse()
		if err != nil {
			return err
		}

		p, err := eng.Onboard(ctx, role, income, fixed)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("PROFILE SAVED"))
		fmt.Println()
		printProfile(p)
		fmt.Println()
		fmt.Printf("  Your daily spending limit is %s. Log spending with `finmate add`.\n",
			cli.Good(money(p.DailySpendingLimit)))
		return nil
	})
}

// onboardValues takes answers from flags when --role and --income are set,
// otherwise runs the interactive form pre-filled from any existing profile.
func onboardValues(ctx context.Context, cmd *cobra.Command, eng *engine.Engine) (tui.OnboardValues, error) {
	if cmd.Flags().Changed("role") && cmd.Flags().Changed("income") {
		return tui.OnboardValues{
			Role:   flagOnboardRole,
			Income: flagOnboardIncome,
			Fixed:  strings.Join(flagOnboardFixed, "\n"),
		}, nil
	}

	var vals tui.OnboardValues
	snap, err := eng.Snapshot(ctx)
	switch {
	case err == nil:
		vals = tui.ValuesFromProfile(snap.Profile)
	case !errors.Is(err, store.ErrNoProfile) && !engine.IsMalformed(err):
		return vals, err
	}
	if flagOnboardRole != "" {
		vals.Role = flagOnboardRole
	}
	if flagOnboardIncome != "" {
		vals.Income = flagOnboardIncome
	}

	if err := tui.NewOnboardForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return vals, errors.New("onboarding canceled")
		}
		return vals, fmt.Errorf("onboarding form: %w", err)
	}
	return vals, nil
}

func printProfile(p model.Profile) {
	pairs := [][2]string{
		{"Role", string(p.Role)},
		{"Income", money(p.Income)},
		{"Needs", money(p.Needs)},
		{"Wants", money(p.Wants)},
		{"Savings", money(p.Savings)},
		{"Daily limit", money(p.DailySpendingLimit)},
	}
	for _, fe := range p.FixedExpenses {
		pairs = append(pairs, [2]string{"Fixed: " + fe.Name, money(fe.Amount)})
	}
	fmt.Print(cli.RenderKV(pairs))
}
