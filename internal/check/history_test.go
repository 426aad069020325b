package check

import (
	"path/filepath"
	"testing"
)

func TestHistoryStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.Emit(sampleReport()); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := store.Emit(sampleReport()); err != nil {
		t.Fatalf("second emit: %v", err)
	}

	var rows int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM check_history`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 4 {
		t.Fatalf("expected one row per entry per emit (4), got %d", rows)
	}

	var status string
	err = store.db.QueryRow(
		`SELECT status FROM check_history WHERE name = 'dns' LIMIT 1`).Scan(&status)
	if err != nil {
		t.Fatalf("status query: %v", err)
	}
	if status != string(StatusFail) {
		t.Fatalf("expected recorded fail status, got %q", status)
	}
}
