package store

import (
	"context"
	"fmt"
	"time"
)

// MonthLayout formats the month key of a fixed expense payment.
const MonthLayout = "2006-01"

// FixedPaid reports whether the fixed expense was marked paid for month.
func (s *Store) FixedPaid(ctx context.Context, expenseID, month string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM fixed_payments WHERE expense_id = ? AND month = ?",
		expenseID, month).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("reading payment %s/%s: %w", expenseID, month, err)
	}
	return n > 0, nil
}

// SetFixedPaid marks or unmarks a month's payment of a fixed expense.
func (s *Store) SetFixedPaid(ctx context.Context, expenseID, month string, paid bool, at time.Time) error {
	var err error
	if paid {
		_, err = s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO fixed_payments (expense_id, month, paid_at) VALUES (?, ?, ?)",
			expenseID, month, formatTime(at))
	} else {
		_, err = s.db.ExecContext(ctx,
			"DELETE FROM fixed_payments WHERE expense_id = ? AND month = ?", expenseID, month)
	}
	if err != nil {
		return fmt.Errorf("saving payment %s/%s: %w", expenseID, month, err)
	}
	return nil
}

// PaidMonths returns the months a fixed expense was paid, oldest first.
func (s *Store) PaidMonths(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT month FROM fixed_payments WHERE expense_id = ? ORDER BY month", expenseID)
	if err != nil {
		return nil, fmt.Errorf("listing payments for %s: %w", expenseID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
