// Package history provides SQLite storage for export history and metadata.
package history

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Export history table
-- Tracks which ledger transactions have been exported to Beancount
CREATE TABLE IF NOT EXISTS export_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ledger_id TEXT NOT NULL,
    transaction_id TEXT NOT NULL,
    issue_date TEXT NOT NULL,          -- YYYY-MM-DD
    amount TEXT NOT NULL,              -- decimal string
    beancount_file TEXT NOT NULL,      -- Path to Beancount file
    exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(ledger_id, transaction_id)
);

CREATE INDEX IF NOT EXISTS idx_export_history_ledger_tx
    ON export_history(ledger_id, transaction_id);

CREATE INDEX IF NOT EXISTS idx_export_history_date
    ON export_history(issue_date);

-- Export metadata table
-- Stores key-value metadata about export runs
CREATE TABLE IF NOT EXISTS export_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
