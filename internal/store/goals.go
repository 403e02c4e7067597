package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/model"
)

// ListGoals returns every goal with its contributions, oldest first.
func (s *Store) ListGoals(ctx context.Context) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, target_amount, current_amount, monthly_contribution FROM goals ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	idx := make(map[string]int)
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.MonthlyContribution); err != nil {
			return nil, err
		}
		idx[g.ID] = len(goals)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load contributions
	crows, err := s.db.QueryContext(ctx, "SELECT goal_id, amount, date FROM contributions ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	defer func() { _ = crows.Close() }()

	for crows.Next() {
		var gid, date string
		var c model.Contribution
		if err := crows.Scan(&gid, &c.Amount, &date); err != nil {
			return nil, err
		}
		c.Date = parseTime(date)
		if i, ok := idx[gid]; ok {
			goals[i].Contributions = append(goals[i].Contributions, c)
		}
	}
	return goals, crows.Err()
}

// GetGoal returns one goal by id.
func (s *Store) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	goals, err := s.ListGoals(ctx)
	if err != nil {
		return model.Goal{}, err
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
}

// SaveGoal inserts or replaces a goal and its contributions.
func (s *Store) SaveGoal(ctx context.Context, g model.Goal) error {
	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO goals (id, name, target_amount, current_amount, monthly_contribution, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			 name = excluded.name, target_amount = excluded.target_amount,
			 current_amount = excluded.current_amount,
			 monthly_contribution = excluded.monthly_contribution`,
			g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.MonthlyContribution, formatTime(time.Now()))
		if err != nil {
			return fmt.Errorf("saving goal %s: %w", g.ID, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM contributions WHERE goal_id = ?", g.ID); err != nil {
			return err
		}
		for _, c := range g.Contributions {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO contributions (goal_id, amount, date) VALUES (?, ?, ?)",
				g.ID, c.Amount, formatTime(c.Date)); err != nil {
				return fmt.Errorf("saving contribution: %w", err)
			}
		}
		return nil
	})
}

// DeleteGoal removes a goal and its contributions.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	return expectOne(res, "goal", id)
}
