// Package engine ties the calculators to storage: it reads the profile and
// transaction log, recomputes the budget and streak, evaluates badges and
// persists what changed.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/theirongolddev/finmate/internal/clock"
	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/logger"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/streak"

	"go.uber.org/zap"
)

var (
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient emergency fund balance")
	// ErrInvalidAmount is returned when a deposit, withdrawal or goal amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// ProfileStore reads and writes the single profile and the monthly
// payment marks of its fixed expenses.
type ProfileStore interface {
	LoadProfile(ctx context.Context) (model.Profile, error)
	SaveProfile(ctx context.Context, p model.Profile) error

	FixedPaid(ctx context.Context, expenseID, month string) (bool, error)
	SetFixedPaid(ctx context.Context, expenseID, month string, paid bool, at time.Time) error
	PaidMonths(ctx context.Context, expenseID string) ([]string, error)
}

// TransactionStore reads and writes the transaction log.
type TransactionStore interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id string) (model.Transaction, error)
	AddTransaction(ctx context.Context, t model.Transaction) error
	AddTransactions(ctx context.Context, txs []model.Transaction) (int, error)
	UpdateTransaction(ctx context.Context, t model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// GoalStore reads and writes savings goals.
type GoalStore interface {
	ListGoals(ctx context.Context) ([]model.Goal, error)
	GetGoal(ctx context.Context, id string) (model.Goal, error)
	SaveGoal(ctx context.Context, g model.Goal) error
	DeleteGoal(ctx context.Context, id string) error
}

// Options configures an Engine.
type Options struct {
	Clock             clock.Clock
	Logger            *zap.SugaredLogger
	MaxLookback       int
	ZeroSpendLookback int
	// SkipMalformed drops transactions with unparsable dates instead of failing.
	SkipMalformed bool
}

// OptionsFromConfig maps the [engine] config section onto Options.
func OptionsFromConfig(cfg config.EngineConfig) Options {
	return Options{
		MaxLookback:       cfg.MaxLookbackDays,
		ZeroSpendLookback: cfg.ZeroSpendLookbackDays,
		SkipMalformed:     cfg.SkipMalformed,
	}
}

// Engine serializes read-compute-persist cycles for one account.
type Engine struct {
	profiles ProfileStore
	txs      TransactionStore
	goals    GoalStore

	clock         clock.Clock
	walker        streak.Walker
	skipMalformed bool
	log           *zap.SugaredLogger

	mu sync.Mutex
}

// New returns an engine over the given stores.
func New(profiles ProfileStore, txs TransactionStore, goals GoalStore, opts Options) *Engine {
	w := streak.New()
	if opts.MaxLookback > 0 {
		w.MaxLookback = opts.MaxLookback
	}
	if opts.ZeroSpendLookback > 0 {
		w.ZeroSpendLookback = opts.ZeroSpendLookback
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Engine{
		profiles:      profiles,
		txs:           txs,
		goals:         goals,
		clock:         opts.Clock,
		walker:        w,
		skipMalformed: opts.SkipMalformed,
		log:           opts.Logger,
	}
}

// Now returns the engine's notion of the current time.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}
