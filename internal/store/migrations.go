package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migration upgrades a database created from schemaSQL. Versions are
// tracked in PRAGMA user_version.
type migration struct {
	version     int
	description string
	stmts       []string
}

var migrations = []migration{
	{
		version:     1,
		description: "goal monthly contribution",
		stmts: []string{
			`ALTER TABLE goals ADD COLUMN monthly_contribution TEXT NOT NULL DEFAULT '0'`,
		},
	},
	{
		version:     2,
		description: "fixed expense payments",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS fixed_payments (
				expense_id TEXT NOT NULL,
				month      TEXT NOT NULL,
				paid_at    TEXT NOT NULL,
				PRIMARY KEY (expense_id, month)
			)`,
		},
	},
}

// schemaVersion is the version a fully migrated database reports.
func schemaVersion() int {
	return migrations[len(migrations)-1].version
}

func migrate(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version))
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
	}
	return nil
}
