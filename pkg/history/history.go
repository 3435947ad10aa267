package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Record represents one exported transaction.
type Record struct {
	ID            int64
	LedgerID      string
	TransactionID string
	IssueDate     string
	Amount        string
	BeancountFile string
	ExportedAt    time.Time
}

// ExportHistory manages export history operations.
type ExportHistory struct {
	conn *Connection
}

// NewExportHistory creates a new ExportHistory instance.
func NewExportHistory(conn *Connection) *ExportHistory {
	return &ExportHistory{conn: conn}
}

// RecordExport records an exported transaction. If the record already
// exists (same ledger + transaction), it is updated.
func (h *ExportHistory) RecordExport(record Record) error {
	query := `
		INSERT INTO export_history (ledger_id, transaction_id, issue_date, amount, beancount_file)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(ledger_id, transaction_id) DO UPDATE SET
			issue_date = excluded.issue_date,
			amount = excluded.amount,
			beancount_file = excluded.beancount_file,
			exported_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query,
		record.LedgerID,
		record.TransactionID,
		record.IssueDate,
		record.Amount,
		record.BeancountFile,
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// IsExported checks whether a transaction has been exported.
func (h *ExportHistory) IsExported(ledgerID, transactionID string) (bool, error) {
	query := `SELECT COUNT(*) FROM export_history WHERE ledger_id = ? AND transaction_id = ?`

	var count int
	if err := h.conn.QueryRow(query, ledgerID, transactionID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check if exported: %w", err)
	}
	return count > 0, nil
}

// ExportedIDs retrieves all exported transaction IDs for a ledger.
func (h *ExportHistory) ExportedIDs(ledgerID string) ([]string, error) {
	query := `SELECT transaction_id FROM export_history WHERE ledger_id = ?`

	rows, err := h.conn.Query(query, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exported IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan transaction ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes an export record, forcing a re-export of the
// transaction on the next run. Reports whether a record existed.
func (h *ExportHistory) Delete(ledgerID, transactionID string) (bool, error) {
	query := `DELETE FROM export_history WHERE ledger_id = ? AND transaction_id = ?`

	result, err := h.conn.Exec(query, ledgerID, transactionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete export record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// Stats represents export statistics.
type Stats struct {
	TotalExported int
	Ledgers       int
	LastExport    sql.NullString
}

// GetStats retrieves export statistics.
func (h *ExportHistory) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*) FROM export_history`).Scan(&stats.TotalExported)
	if err != nil {
		return nil, fmt.Errorf("failed to get export count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COUNT(DISTINCT ledger_id) FROM export_history`).Scan(&stats.Ledgers)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(exported_at) FROM export_history`).Scan(&stats.LastExport)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last export time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value, or "" when unset.
func (h *ExportHistory) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM export_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata sets a metadata value.
func (h *ExportHistory) SetMetadata(key, value string) error {
	query := `
		INSERT INTO export_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := h.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
