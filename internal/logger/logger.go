// Package logger provides structured logging using Zap.
package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// New builds a sugared logger writing to stderr. format is "json" or
// "console"; level is any zap level name and defaults to warn.
func New(level, format string) (*zap.SugaredLogger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		lvl = parsed
	}

	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return base.Sugar(), nil
}

// Init initializes the global logger once. A bad level or format falls
// back to the default console logger.
func Init(level, format string) {
	once.Do(func() {
		l, err := New(level, format)
		if err != nil {
			l, _ = New("", "console")
		}
		if l == nil {
			l = Nop()
		}
		sugar = l
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a warn-level console logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("", "console")
	}
	return sugar
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
