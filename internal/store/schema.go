package store

// Amounts are stored as decimal strings so no precision is lost.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS profile (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    role                 TEXT NOT NULL,
    income               TEXT NOT NULL,
    needs                TEXT NOT NULL,
    wants                TEXT NOT NULL,
    savings              TEXT NOT NULL,
    daily_limit          TEXT NOT NULL,
    fund_target          TEXT NOT NULL DEFAULT '0',
    fund_current         TEXT NOT NULL DEFAULT '0',
    current_streak       INTEGER NOT NULL DEFAULT 0,
    longest_streak       INTEGER NOT NULL DEFAULT 0,
    last_streak_date     TEXT,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fixed_expenses (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               TEXT NOT NULL,
    position             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fund_history (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    action               TEXT NOT NULL,
    amount               TEXT NOT NULL,
    date                 TEXT NOT NULL,
    notes                TEXT
);

CREATE TABLE IF NOT EXISTS earned_badges (
    badge_id             TEXT PRIMARY KEY,
    earned_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   TEXT PRIMARY KEY,
    amount               TEXT NOT NULL,
    category             TEXT NOT NULL,
    description          TEXT,
    date                 TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    target_amount        TEXT NOT NULL,
    current_amount       TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contributions (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_id              TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    amount               TEXT NOT NULL,
    date                 TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_contributions_goal ON contributions(goal_id);
`
