package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/model"
)

const txColumns = "id, amount, category, description, date"

func scanTransaction(sc interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	var desc sql.NullString
	if err := sc.Scan(&t.ID, &t.Amount, &t.Category, &desc, &t.Date); err != nil {
		return t, err
	}
	t.Description = desc.String
	return t, nil
}

// ListTransactions returns the whole log in insertion order. Dates are
// returned exactly as stored.
func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+txColumns+" FROM transactions ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetTransaction returns one transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return t, err
}

// AddTransaction inserts t. The id must be set and unique.
func (s *Store) AddTransaction(ctx context.Context, t model.Transaction) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions ("+txColumns+", created_at) VALUES (?, ?, ?, ?, ?, ?)",
		t.ID, t.Amount, t.Category, t.Description, t.Date, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("adding transaction %s: %w", t.ID, err)
	}
	return nil
}

// AddTransactions inserts a batch in one transaction, skipping ids that
// already exist. It returns how many rows were inserted.
func (s *Store) AddTransactions(ctx context.Context, txs []model.Transaction) (int, error) {
	inserted := 0
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		now := formatTime(time.Now())
		for _, t := range txs {
			res, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO transactions ("+txColumns+", created_at) VALUES (?, ?, ?, ?, ?, ?)",
				t.ID, t.Amount, t.Category, t.Description, t.Date, now)
			if err != nil {
				return fmt.Errorf("adding transaction %s: %w", t.ID, err)
			}
			n, _ := res.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// UpdateTransaction replaces the stored transaction with the same id.
func (s *Store) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET amount = ?, category = ?, description = ?, date = ? WHERE id = ?",
		t.Amount, t.Category, t.Description, t.Date, t.ID)
	if err != nil {
		return fmt.Errorf("updating transaction %s: %w", t.ID, err)
	}
	return expectOne(res, "transaction", t.ID)
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	return expectOne(res, "transaction", id)
}

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

func expectOne(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
