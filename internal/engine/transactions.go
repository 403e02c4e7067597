package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewTransaction is the input for AddTransaction.
type NewTransaction struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	// Date defaults to now.
	Date time.Time
}

func validateAmount(amt decimal.Decimal) error {
	if amt.IsNegative() {
		return budget.ErrNegativeAmount
	}
	return nil
}

// AddTransaction records a new expense and, since the log grew, runs a
// badge check. Nothing is stored before onboarding.
func (e *Engine) AddTransaction(ctx context.Context, in NewTransaction) (model.Transaction, Result, error) {
	if err := validateAmount(in.Amount); err != nil {
		return model.Transaction{}, Result{}, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "Other"
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.profiles.LoadProfile(ctx); err != nil {
		return model.Transaction{}, Result{}, err
	}

	when := in.Date
	if when.IsZero() {
		when = e.clock.Now()
	}
	t := model.Transaction{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Date:        pipeline.FormatDate(when),
	}
	if err := e.txs.AddTransaction(ctx, t); err != nil {
		return model.Transaction{}, Result{}, err
	}

	res, err := e.checkBadges(ctx)
	if err != nil {
		return t, Result{}, fmt.Errorf("transaction saved, badge check failed: %w", err)
	}
	return t, res, nil
}

// ImportTransactions stores a batch, skipping ids already present, and runs
// a badge check if anything was added. Missing ids are generated.
func (e *Engine) ImportTransactions(ctx context.Context, txs []model.Transaction) (int, Result, error) {
	batch := make([]model.Transaction, len(txs))
	for i, t := range txs {
		if err := validateAmount(t.Amount); err != nil {
			return 0, Result{}, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		batch[i] = t
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.profiles.LoadProfile(ctx); err != nil {
		return 0, Result{}, err
	}

	added, err := e.txs.AddTransactions(ctx, batch)
	if err != nil {
		return 0, Result{}, err
	}
	if added == 0 {
		return 0, Result{}, nil
	}
	res, err := e.checkBadges(ctx)
	if err != nil {
		return added, Result{}, fmt.Errorf("transactions saved, badge check failed: %w", err)
	}
	return added, res, nil
}

// UpdateTransaction replaces a stored transaction. The new date must parse;
// a bad date is rejected rather than stored. Badges are not re-evaluated.
func (e *Engine) UpdateTransaction(ctx context.Context, t model.Transaction) (Result, error) {
	if err := validateAmount(t.Amount); err != nil {
		return Result{}, err
	}
	if _, err := pipeline.ParseDate(t.Date); err != nil {
		return Result{}, &pipeline.MalformedTransactionError{TransactionID: t.ID, Date: t.Date, Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.txs.UpdateTransaction(ctx, t); err != nil {
		return Result{}, err
	}
	return e.refreshStreak(ctx)
}

// DeleteTransaction removes a transaction and refreshes the stored streak.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.txs.DeleteTransaction(ctx, id); err != nil {
		return Result{}, err
	}
	return e.refreshStreak(ctx)
}

// Transaction returns one stored transaction.
func (e *Engine) Transaction(ctx context.Context, id string) (model.Transaction, error) {
	return e.txs.GetTransaction(ctx, id)
}

// IsMalformed reports whether err came from an unparsable transaction date.
func IsMalformed(err error) bool {
	var mErr *pipeline.MalformedTransactionError
	return errors.As(err, &mErr)
}
