package engine

import (
	"context"
	"strings"

	"github.com/theirongolddev/finmate/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddGoal creates a savings goal with nothing saved yet. monthly is the
// planned contribution per month and may be zero.
func (e *Engine) AddGoal(ctx context.Context, name string, target, monthly decimal.Decimal) (model.Goal, error) {
	if !target.IsPositive() || monthly.IsNegative() {
		return model.Goal{}, ErrInvalidAmount
	}
	g := model.Goal{
		ID:                  uuid.NewString(),
		Name:                strings.TrimSpace(name),
		TargetAmount:        target,
		CurrentAmount:       decimal.Zero,
		MonthlyContribution: monthly,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.goals.SaveGoal(ctx, g); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

// Contribute adds amount to a goal. The saved amount never exceeds the
// target; the contribution itself is recorded as given.
func (e *Engine) Contribute(ctx context.Context, goalID string, amount decimal.Decimal) (model.Goal, error) {
	if !amount.IsPositive() {
		return model.Goal{}, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.goals.GetGoal(ctx, goalID)
	if err != nil {
		return model.Goal{}, err
	}
	wasDone := g.Completed()
	g.CurrentAmount = decimal.Min(g.CurrentAmount.Add(amount), g.TargetAmount)
	g.Contributions = append(append([]model.Contribution(nil), g.Contributions...), model.Contribution{
		Amount: amount,
		Date:   e.clock.Now(),
	})
	if err := e.goals.SaveGoal(ctx, g); err != nil {
		return model.Goal{}, err
	}
	if !wasDone && g.Completed() {
		e.log.Infow("goal reached", "goal", g.Name, "target", g.TargetAmount.String())
	}
	return g, nil
}

// GoalUpdate names the goal fields to change. Nil fields are kept.
type GoalUpdate struct {
	Name    *string
	Target  *decimal.Decimal
	Monthly *decimal.Decimal
}

// UpdateGoal renames or retargets a goal. Lowering the target below what is
// already saved caps the saved amount at the new target.
func (e *Engine) UpdateGoal(ctx context.Context, id string, u GoalUpdate) (model.Goal, error) {
	if u.Target != nil && !u.Target.IsPositive() {
		return model.Goal{}, ErrInvalidAmount
	}
	if u.Monthly != nil && u.Monthly.IsNegative() {
		return model.Goal{}, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.goals.GetGoal(ctx, id)
	if err != nil {
		return model.Goal{}, err
	}
	if u.Name != nil {
		if name := strings.TrimSpace(*u.Name); name != "" {
			g.Name = name
		}
	}
	if u.Target != nil {
		g.TargetAmount = *u.Target
		g.CurrentAmount = decimal.Min(g.CurrentAmount, g.TargetAmount)
	}
	if u.Monthly != nil {
		g.MonthlyContribution = *u.Monthly
	}
	if err := e.goals.SaveGoal(ctx, g); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

// DeleteGoal removes a goal and its contributions. Badges earned through
// it are kept.
func (e *Engine) DeleteGoal(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.goals.DeleteGoal(ctx, id); err != nil {
		return err
	}
	e.log.Debugw("goal deleted", "goal", id)
	return nil
}

// Goals lists every goal.
func (e *Engine) Goals(ctx context.Context) ([]model.Goal, error) {
	return e.goals.ListGoals(ctx)
}
