// Package config loads and saves the finmate TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all finmate configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Engine     EngineConfig     `toml:"engine"`
	Log        LogConfig        `toml:"log"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	DBPath   string `toml:"db_path,omitempty"`
}

// EngineConfig tunes the streak and badge computations.
type EngineConfig struct {
	MaxLookbackDays       int  `toml:"max_lookback_days"`
	ZeroSpendLookbackDays int  `toml:"zero_spend_lookback_days"`
	SkipMalformed         bool `toml:"skip_malformed"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds background polling settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "INR",
		},
		Engine: EngineConfig{
			MaxLookbackDays:       365,
			ZeroSpendLookbackDays: 30,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  15,
			EventsBuffer: 200,
		},
	}
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.Engine.MaxLookbackDays <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_lookback_days must be positive, got %d", c.Engine.MaxLookbackDays))
	}
	if c.Engine.ZeroSpendLookbackDays <= 0 {
		errs = append(errs, fmt.Errorf("engine.zero_spend_lookback_days must be positive, got %d", c.Engine.ZeroSpendLookbackDays))
	}
	if _, ok := LookupCurrency(c.General.Currency); !ok {
		errs = append(errs, fmt.Errorf("general.currency %q is not supported", c.General.Currency))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Daemon.IntervalSec < 0 || c.Daemon.EventsBuffer < 0 {
		errs = append(errs, errors.New("daemon.interval_sec and daemon.events_buffer cannot be negative"))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finmate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finmate")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finmate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finmate")
}

// DBPath resolves the database location: FINMATE_DB, then the config file,
// then the data directory.
func DBPath(cfg Config) string {
	if p := os.Getenv("FINMATE_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "finmate.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-selected config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-selected config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
