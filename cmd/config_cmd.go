package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/spf13/cobra"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Database:    %s\n", dbPath())
	fmt.Println()

	fmt.Println("  [General]")
	cur := config.CurrencyFor(cfg)
	fmt.Printf("    Currency: %s (%s)\n", cur.Code, cur.Symbol)
	fmt.Println()

	fmt.Println("  [Engine]")
	fmt.Printf("    Max lookback days:        %d\n", cfg.Engine.MaxLookbackDays)
	fmt.Printf("    Zero-spend lookback days: %d\n", cfg.Engine.ZeroSpendLookbackDays)
	fmt.Printf("    Skip malformed records:   %v\n", cfg.Engine.SkipMalformed)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s (available: %s)\n", cfg.Appearance.Theme, strings.Join(theme.Names(), ", "))
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	if !config.Exists() {
		fmt.Println("  Run `finmate config init` to write a config file.")
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := config.ConfigPath()
	if config.Exists() && !flagConfigForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", path)
	return nil
}
