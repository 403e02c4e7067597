package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Engine.MaxLookbackDays != 365 || cfg.Engine.ZeroSpendLookbackDays != 30 {
		t.Fatalf("engine defaults = %+v", cfg.Engine)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.General.Currency = "USD"
	cfg.Engine.MaxLookbackDays = 90
	cfg.Engine.SkipMalformed = true
	cfg.Log.Format = "json"
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero lookback", func(c *Config) { c.Engine.MaxLookbackDays = 0 }, "max_lookback_days"},
		{"negative zero-spend lookback", func(c *Config) { c.Engine.ZeroSpendLookbackDays = -1 }, "zero_spend_lookback_days"},
		{"unknown currency", func(c *Config) { c.General.Currency = "XYZ" }, "currency"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestDBPath_Precedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("FINMATE_DB", "")

	cfg := DefaultConfig()
	if got := DBPath(cfg); got != filepath.Join("/data", "finmate", "finmate.db") {
		t.Errorf("default DBPath = %q", got)
	}

	cfg.General.DBPath = "/cfg/budget.db"
	if got := DBPath(cfg); got != "/cfg/budget.db" {
		t.Errorf("config DBPath = %q", got)
	}

	t.Setenv("FINMATE_DB", "/env/override.db")
	if got := DBPath(cfg); got != "/env/override.db" {
		t.Errorf("env DBPath = %q", got)
	}
}

func TestLookupCurrency(t *testing.T) {
	c, ok := LookupCurrency(" inr ")
	if !ok || c.Symbol != "₹" || c.Grouping != GroupLakh {
		t.Fatalf("LookupCurrency(inr) = %+v, %v", c, ok)
	}
	if got := CurrencyFor(Config{}); got.Code != "INR" {
		t.Fatalf("CurrencyFor(empty) = %q, want INR", got.Code)
	}
}
