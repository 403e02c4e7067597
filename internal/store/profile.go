package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/model"
)

// LoadProfile reads the profile with its fixed expenses, fund history and
// earned badges.
func (s *Store) LoadProfile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	var role string
	var lastStreak sql.NullString

	err := s.db.QueryRowContext(ctx, `SELECT
		role, income, needs, wants, savings, daily_limit,
		fund_target, fund_current, current_streak, longest_streak, last_streak_date
		FROM profile WHERE id = 1`).Scan(
		&role, &p.Income, &p.Needs, &p.Wants, &p.Savings, &p.DailySpendingLimit,
		&p.EmergencyFund.Target, &p.EmergencyFund.Current,
		&p.Gamification.CurrentStreak, &p.Gamification.LongestStreak, &lastStreak,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNoProfile
	}
	if err != nil {
		return p, fmt.Errorf("loading profile: %w", err)
	}
	p.Role = model.Role(role)
	if lastStreak.Valid && lastStreak.String != "" {
		t := parseTime(lastStreak.String)
		p.Gamification.LastStreakDate = &t
	}

	if p.FixedExpenses, err = s.loadFixedExpenses(ctx); err != nil {
		return p, err
	}
	if p.EmergencyFund.History, err = s.loadFundHistory(ctx); err != nil {
		return p, err
	}
	if p.Gamification.EarnedBadges, err = s.loadBadges(ctx); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Store) loadFixedExpenses(ctx context.Context) ([]model.FixedExpense, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, amount FROM fixed_expenses ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("loading fixed expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.FixedExpense
	for rows.Next() {
		var fe model.FixedExpense
		if err := rows.Scan(&fe.ID, &fe.Name, &fe.Amount); err != nil {
			return nil, err
		}
		out = append(out, fe)
	}
	return out, rows.Err()
}

func (s *Store) loadFundHistory(ctx context.Context) ([]model.EmergencyFundEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT action, amount, date, notes FROM fund_history ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("loading fund history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.EmergencyFundEntry
	for rows.Next() {
		var e model.EmergencyFundEntry
		var action, date string
		var notes sql.NullString
		if err := rows.Scan(&action, &e.Amount, &date, &notes); err != nil {
			return nil, err
		}
		e.Action = model.FundAction(action)
		e.Date = parseTime(date)
		e.Notes = notes.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) loadBadges(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT badge_id FROM earned_badges ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("loading badges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// SaveProfile writes the whole profile in one transaction. Earned badges are
// only ever inserted, so a save from a stale copy cannot revoke a badge
// another process awarded.
func (s *Store) SaveProfile(ctx context.Context, p model.Profile) error {
	now := time.Now()
	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		var lastStreak any
		if p.Gamification.LastStreakDate != nil {
			lastStreak = formatTime(*p.Gamification.LastStreakDate)
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO profile
			(id, role, income, needs, wants, savings, daily_limit,
			 fund_target, fund_current, current_streak, longest_streak, last_streak_date, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			 role = excluded.role, income = excluded.income, needs = excluded.needs,
			 wants = excluded.wants, savings = excluded.savings, daily_limit = excluded.daily_limit,
			 fund_target = excluded.fund_target, fund_current = excluded.fund_current,
			 current_streak = excluded.current_streak,
			 longest_streak = MAX(profile.longest_streak, excluded.longest_streak),
			 last_streak_date = excluded.last_streak_date, updated_at = excluded.updated_at`,
			string(p.Role), p.Income, p.Needs, p.Wants, p.Savings, p.DailySpendingLimit,
			p.EmergencyFund.Target, p.EmergencyFund.Current,
			p.Gamification.CurrentStreak, p.Gamification.LongestStreak, lastStreak, formatTime(now),
		)
		if err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM fixed_expenses"); err != nil {
			return err
		}
		for i, fe := range p.FixedExpenses {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO fixed_expenses (id, name, amount, position) VALUES (?, ?, ?, ?)",
				fe.ID, fe.Name, fe.Amount, i); err != nil {
				return fmt.Errorf("saving fixed expense %s: %w", fe.Name, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM fixed_payments WHERE expense_id NOT IN (SELECT id FROM fixed_expenses)"); err != nil {
			return fmt.Errorf("pruning payments: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM fund_history"); err != nil {
			return err
		}
		for _, e := range p.EmergencyFund.History {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO fund_history (action, amount, date, notes) VALUES (?, ?, ?, ?)",
				string(e.Action), e.Amount, formatTime(e.Date), e.Notes); err != nil {
				return fmt.Errorf("saving fund history: %w", err)
			}
		}

		for _, id := range p.Gamification.EarnedBadges {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO earned_badges (badge_id, earned_at) VALUES (?, ?)",
				id, formatTime(now)); err != nil {
				return fmt.Errorf("saving badge %s: %w", id, err)
			}
		}
		return nil
	})
}
