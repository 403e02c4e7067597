// Package cmd implements the finmate CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/clock"
	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/logger"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagAsOf  string
	flagQuiet bool

	appCfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "finmate",
	Short: "Behavioral budgeting from the terminal",
	Long: "Track daily spending against a role-based budget, keep an " +
		"under-budget streak alive and earn badges along the way.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runToday,
}

// Execute is the main entry point called from main.go.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default from config or $FINMATE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Treat YYYY-MM-DD as today")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress celebratory output")
}

// setup loads the config and initializes logging before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", config.ConfigPath(), err)
	}
	appCfg = cfg
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(appCfg)
}

func appClock() (clock.Clock, error) {
	if flagAsOf == "" {
		return clock.System{}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", flagAsOf, time.Local)
	if err != nil {
		return nil, fmt.Errorf("--as-of: want YYYY-MM-DD, got %q", flagAsOf)
	}
	return clock.At(day.Year(), day.Month(), day.Day()), nil
}

// openEngine opens the store and wraps it in an engine configured from the
// [engine] section. The caller closes the store.
func openEngine() (*engine.Engine, *store.Store, error) {
	clk, err := appClock()
	if err != nil {
		return nil, nil, err
	}

	path := dbPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	log := logger.Get()
	log.Debugw("opened store", "path", path)

	opts := engine.OptionsFromConfig(appCfg.Engine)
	opts.Clock = clk
	opts.Logger = log
	return engine.New(st, st, st, opts), st, nil
}

// withEngine runs fn against a freshly opened engine.
func withEngine(cmd *cobra.Command, fn func(ctx context.Context, eng *engine.Engine) error) error {
	return withStore(cmd, func(ctx context.Context, eng *engine.Engine, _ *store.Store) error {
		return fn(ctx, eng)
	})
}

// withStore is withEngine for commands that also read the store directly.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, eng *engine.Engine, st *store.Store) error) error {
	eng, st, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, eng, st)
}

func money(d decimal.Decimal) string {
	return cli.FormatMoney(d, config.CurrencyFor(appCfg))
}

// printResult reports streak changes and newly earned badges.
func printResult(res engine.Result) {
	if flagQuiet {
		return
	}
	if len(res.Skipped) > 0 {
		fmt.Println(cli.Warn(fmt.Sprintf("  Skipped %d transaction(s) with malformed dates", len(res.Skipped))))
	}
	fmt.Printf("  Streak: %s (best %s)\n",
		cli.Streak(cli.FormatStreak(res.Streak)), cli.FormatStreak(res.LongestStreak))
	for _, b := range res.Awarded {
		fmt.Printf("  %s New badge: %s  %s\n", b.Emoji, cli.Good(b.Name), cli.Muted(b.Description))
	}
}
