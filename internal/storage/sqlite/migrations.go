package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Transactions and group expense membership reference participants by ID
// without a foreign key: ledger history is an independent fact that must
// survive participant removal. Balances are owned by their participant and
// cascade with them.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    year INTEGER NOT NULL,
    session_number INTEGER NOT NULL,
    name TEXT NOT NULL,
    start_date INTEGER NOT NULL,
    end_date INTEGER NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    photo_path TEXT NOT NULL DEFAULT '',
    parent_email TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS balances (
    id TEXT PRIMARY KEY,
    participant_id TEXT NOT NULL,
    currency_code TEXT NOT NULL,
    amount REAL NOT NULL,
    initial_deposit REAL NOT NULL DEFAULT 0,
    total_spent REAL NOT NULL DEFAULT 0,
    UNIQUE (participant_id, currency_code),
    FOREIGN KEY (participant_id) REFERENCES participants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    participant_id TEXT NOT NULL,
    type TEXT NOT NULL,
    amount REAL NOT NULL,
    currency_code TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    group_expense_id TEXT,
    exchange_rate REAL,
    base_equivalent REAL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_expenses (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    name TEXT NOT NULL,
    total_amount REAL NOT NULL,
    currency_code TEXT NOT NULL,
    amount_per_person REAL NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_expense_participants (
    group_expense_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (group_expense_id, participant_id),
    FOREIGN KEY (group_expense_id) REFERENCES group_expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_participants_session ON participants(session_id);
CREATE INDEX IF NOT EXISTS idx_transactions_participant ON transactions(participant_id);
CREATE INDEX IF NOT EXISTS idx_group_expenses_session ON group_expenses(session_id);
`

// runMigrations applies the schema to the database.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
