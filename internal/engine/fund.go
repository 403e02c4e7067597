package engine

import (
	"context"

	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
)

// Deposit adds to the emergency fund.
func (e *Engine) Deposit(ctx context.Context, amount decimal.Decimal, notes string) (model.EmergencyFund, error) {
	return e.moveFund(ctx, model.FundDeposit, amount, notes)
}

// Withdraw takes from the emergency fund. It fails with
// ErrInsufficientFunds rather than going negative.
func (e *Engine) Withdraw(ctx context.Context, amount decimal.Decimal, notes string) (model.EmergencyFund, error) {
	return e.moveFund(ctx, model.FundWithdraw, amount, notes)
}

func (e *Engine) moveFund(ctx context.Context, action model.FundAction, amount decimal.Decimal, notes string) (model.EmergencyFund, error) {
	if !amount.IsPositive() {
		return model.EmergencyFund{}, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.profiles.LoadProfile(ctx)
	if err != nil {
		return model.EmergencyFund{}, err
	}
	fund := p.EmergencyFund
	switch action {
	case model.FundDeposit:
		fund.Current = fund.Current.Add(amount)
	case model.FundWithdraw:
		if amount.GreaterThan(fund.Current) {
			return p.EmergencyFund, ErrInsufficientFunds
		}
		fund.Current = fund.Current.Sub(amount)
	}
	fund.History = append(append([]model.EmergencyFundEntry(nil), fund.History...), model.EmergencyFundEntry{
		Action: action,
		Amount: amount,
		Date:   e.clock.Now(),
		Notes:  notes,
	})
	p.EmergencyFund = fund

	if err := e.profiles.SaveProfile(ctx, p); err != nil {
		return model.EmergencyFund{}, err
	}
	e.log.Infow("emergency fund updated", "action", action, "amount", amount.String(), "balance", fund.Current.String())
	return fund, nil
}

// SetFundTarget sets the emergency fund goal. Zero clears it.
func (e *Engine) SetFundTarget(ctx context.Context, target decimal.Decimal) (model.EmergencyFund, error) {
	if target.IsNegative() {
		return model.EmergencyFund{}, budget.ErrNegativeAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.profiles.LoadProfile(ctx)
	if err != nil {
		return model.EmergencyFund{}, err
	}
	p.EmergencyFund.Target = target
	if err := e.profiles.SaveProfile(ctx, p); err != nil {
		return model.EmergencyFund{}, err
	}
	return p.EmergencyFund, nil
}
