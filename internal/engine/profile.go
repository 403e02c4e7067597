package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/budget"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Onboard creates the profile, or replaces the role, income and fixed
// expenses of an existing one. Fund and gamification state survive a
// repeated onboarding.
func (e *Engine) Onboard(ctx context.Context, role model.Role, income decimal.Decimal, fixed []model.FixedExpense) (model.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.profiles.LoadProfile(ctx)
	switch {
	case errors.Is(err, store.ErrNoProfile):
		p = model.Profile{}
	case err != nil:
		return model.Profile{}, err
	}

	p.Role = role
	p.Income = income
	p.FixedExpenses = withIDs(fixed)
	return e.saveDerived(ctx, p)
}

// ProfileUpdate names the profile fields to change. Nil fields are kept.
type ProfileUpdate struct {
	Role          *model.Role
	Income        *decimal.Decimal
	FixedExpenses *[]model.FixedExpense
}

// UpdateProfile applies u and recomputes the derived budget. An invalid
// role or amount leaves the stored profile untouched.
func (e *Engine) UpdateProfile(ctx context.Context, u ProfileUpdate) (model.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.profiles.LoadProfile(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.Income != nil {
		p.Income = *u.Income
	}
	if u.FixedExpenses != nil {
		p.FixedExpenses = withIDs(keepIDs(p.FixedExpenses, *u.FixedExpenses))
	}
	return e.saveDerived(ctx, p)
}

func (e *Engine) saveDerived(ctx context.Context, p model.Profile) (model.Profile, error) {
	for _, fe := range p.FixedExpenses {
		if fe.Amount.IsNegative() {
			return model.Profile{}, fmt.Errorf("fixed expense %s: %w", fe.Name, budget.ErrNegativeAmount)
		}
	}
	b, err := budget.ForProfile(p, e.clock.Now())
	if err != nil {
		return model.Profile{}, err
	}
	p.ApplyBudget(b)
	if err := e.profiles.SaveProfile(ctx, p); err != nil {
		return model.Profile{}, err
	}
	e.log.Debugw("profile saved", "role", p.Role, "daily_limit", p.DailySpendingLimit.String())
	return p, nil
}

// keepIDs reuses the id of an existing expense with the same name so its
// payment history survives a replacement of the list.
func keepIDs(old, fixed []model.FixedExpense) []model.FixedExpense {
	byName := make(map[string]string, len(old))
	for _, fe := range old {
		byName[strings.ToLower(strings.TrimSpace(fe.Name))] = fe.ID
	}
	out := make([]model.FixedExpense, len(fixed))
	copy(out, fixed)
	for i := range out {
		key := strings.ToLower(strings.TrimSpace(out[i].Name))
		if out[i].ID == "" {
			out[i].ID = byName[key]
			delete(byName, key)
		}
	}
	return out
}

func withIDs(fixed []model.FixedExpense) []model.FixedExpense {
	out := make([]model.FixedExpense, len(fixed))
	copy(out, fixed)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
