// Package backup archives selected directory trees into tarballs through
// the system tar binary and records a manifest of what was taken.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	_ "modernc.org/sqlite"

	"github.com/opsbox/opsbox/internal/execx"
)

// DefaultSources are the directory trees worth taking from an unfamiliar
// host before touching anything on it.
var DefaultSources = []string{
	"/etc", "/var/lib", "/var/www", "/lib/systemd", "/usr/lib/systemd", "/opt",
}

// Manifest records one backup run.
type Manifest struct {
	CreatedAt time.Time `json:"created_at"`
	Archive   string    `json:"archive"`
	Sources   []string  `json:"sources"`
	SizeBytes int64     `json:"size_bytes"`
}

// Run archives sources into a gzip tarball at archivePath. Sources that do
// not exist are skipped, not fatal; tar exiting nonzero is.
func Run(ctx context.Context, r execx.Runner, archivePath string, sources []string) (Manifest, error) {
	var existing []string
	for _, src := range sources {
		if _, err := os.Stat(src); err == nil {
			existing = append(existing, src)
		}
	}
	if len(existing) == 0 {
		return Manifest{}, fmt.Errorf("none of the requested source paths exist: %v", sources)
	}

	args := append([]string{"-czf", archivePath, "--ignore-failed-read"}, existing...)
	code, out, err := r.Capture(ctx, "tar", args...)
	if err != nil {
		return Manifest{}, fmt.Errorf("launching tar: %w", err)
	}
	if code != 0 {
		return Manifest{}, fmt.Errorf("tar exited with status %d: %s", code, strings.TrimSpace(out))
	}

	m := Manifest{
		CreatedAt: time.Now().UTC(),
		Archive:   archivePath,
		Sources:   existing,
	}
	if info, err := os.Stat(archivePath); err == nil {
		m.SizeBytes = info.Size()
	}
	return m, nil
}

// WriteManifest stores the manifest next to the archive, atomically.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := renameio.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing manifest to %s: %w", path, err)
	}
	return nil
}

// Index records manifests in a sqlite catalog so an operator can see what
// was taken from the host and when.
type Index struct {
	db *sql.DB
}

const indexSchema = `
CREATE TABLE IF NOT EXISTS backups (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	archive    TEXT NOT NULL,
	sources    TEXT NOT NULL,
	size_bytes INTEGER NOT NULL
);
`

// OpenIndex opens or initializes the backup catalog.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening backup index: %w", err)
	}
	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing backup index: %w", err)
	}
	return &Index{db: db}, nil
}

// Record appends one manifest to the catalog.
func (ix *Index) Record(m Manifest) error {
	sources, err := json.Marshal(m.Sources)
	if err != nil {
		return fmt.Errorf("encoding sources: %w", err)
	}
	_, err = ix.db.Exec(
		`INSERT INTO backups (created_at, archive, sources, size_bytes) VALUES (?, ?, ?, ?)`,
		m.CreatedAt.Format(time.RFC3339), m.Archive, string(sources), m.SizeBytes)
	if err != nil {
		return fmt.Errorf("recording backup: %w", err)
	}
	return nil
}

// Close releases the catalog handle.
func (ix *Index) Close() error { return ix.db.Close() }
