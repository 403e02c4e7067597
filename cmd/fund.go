package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagFundNote    string
	flagFundHistory int
)

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Emergency fund balance and history",
	RunE:  runFund,
}

var fundDepositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Add to the emergency fund",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moveFund(cmd, args[0], (*engine.Engine).Deposit)
	},
}

var fundWithdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Take from the emergency fund",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moveFund(cmd, args[0], (*engine.Engine).Withdraw)
	},
}

var fundTargetCmd = &cobra.Command{
	Use:   "target <amount>",
	Short: "Set the emergency fund target (0 clears it)",
	Args:  cobra.ExactArgs(1),
	RunE:  runFundTarget,
}

func init() {
	fundCmd.Flags().IntVar(&flagFundHistory, "history", 10, "Number of history entries to show")
	for _, c := range []*cobra.Command{fundDepositCmd, fundWithdrawCmd} {
		c.Flags().StringVar(&flagFundNote, "note", "", "Free-text note for the entry")
	}
	fundCmd.AddCommand(fundDepositCmd, fundWithdrawCmd, fundTargetCmd)
	rootCmd.AddCommand(fundCmd)
}

type fundMove func(*engine.Engine, context.Context, decimal.Decimal, string) (model.EmergencyFund, error)

func moveFund(cmd *cobra.Command, arg string, move fundMove) error {
	amount, err := cli.ParseAmount(arg)
	if err != nil {
		return err
	}
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		fund, err := move(eng, ctx, amount, flagFundNote)
		if errors.Is(err, engine.ErrInsufficientFunds) {
			return fmt.Errorf("%w: balance is %s", err, money(fund.Current))
		}
		if err != nil {
			return err
		}
		fmt.Printf("  Emergency fund: %s\n", cli.Good(money(fund.Current)))
		printFundProgress(fund)
		return nil
	})
}

func runFundTarget(cmd *cobra.Command, args []string) error {
	target, err := cli.ParseAmount(args[0])
	if err != nil {
		return err
	}
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		fund, err := eng.SetFundTarget(ctx, target)
		if err != nil {
			return err
		}
		if fund.Target.IsZero() {
			fmt.Println("  Emergency fund target cleared.")
			return nil
		}
		fmt.Printf("  Emergency fund target: %s\n", money(fund.Target))
		printFundProgress(fund)
		return nil
	})
}

func printFundProgress(fund model.EmergencyFund) {
	if !fund.Target.IsPositive() {
		return
	}
	frac, _ := fund.Current.Div(fund.Target).Float64()
	fmt.Printf("  %s of %s\n", cli.RenderProgressBar(frac, 24), money(fund.Target))
}

func runFund(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, eng *engine.Engine) error {
		snap, err := eng.Snapshot(ctx)
		if err != nil {
			return err
		}
		fund := snap.Profile.EmergencyFund

		months := "-"
		if exp := snap.Profile.MonthlyExpenses(); exp.IsPositive() {
			months = fund.Current.Div(exp).StringFixed(1)
		}
		target := "not set"
		if fund.Target.IsPositive() {
			target = money(fund.Target)
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("EMERGENCY FUND"))
		fmt.Println()
		fmt.Print(cli.RenderKV([][2]string{
			{"Balance", money(fund.Current)},
			{"Target", target},
			{"Months covered", months},
		}))
		printFundProgress(fund)

		if len(fund.History) == 0 || flagFundHistory <= 0 {
			return nil
		}
		hist := fund.History
		if len(hist) > flagFundHistory {
			hist = hist[len(hist)-flagFundHistory:]
		}
		rows := make([][]string, 0, len(hist))
		for i := len(hist) - 1; i >= 0; i-- {
			h := hist[i]
			amt := money(h.Amount)
			if h.Action == model.FundWithdraw {
				amt = cli.Bad("-" + amt)
			} else {
				amt = cli.Good("+" + amt)
			}
			rows = append(rows, []string{cli.FormatDay(h.Date), string(h.Action), amt, h.Notes})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Date", "Action", "Amount", "Note"},
			Rows:    rows,
		}))
		return nil
	})
}
