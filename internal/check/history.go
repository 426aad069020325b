package check

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS check_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	emitted_at TEXT NOT NULL,
	name       TEXT NOT NULL,
	status     TEXT NOT NULL,
	outcomes   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_check_history_name ON check_history(name, emitted_at);
`

// HistoryStore records emitted reports in a local sqlite database. The
// daemon only ever writes to it; the daemon's in-memory state is the sole
// input to its own decisions, so history is an audit trail, not state.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens (and if needed initializes) the history database.
func OpenHistory(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Emit stores one row per report entry.
func (h *HistoryStore) Emit(report *Report) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO check_history (emitted_at, name, status, outcomes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing history insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range report.Entries {
		outcomes, err := json.Marshal(entry.Outcomes)
		if err != nil {
			return fmt.Errorf("encoding outcomes for %s: %w", entry.Name, err)
		}
		if _, err := stmt.Exec(
			report.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			entry.Name,
			string(entry.Status()),
			string(outcomes),
		); err != nil {
			return fmt.Errorf("recording history for %s: %w", entry.Name, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}
