package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/require"
)

func TestWatchDaemonSelection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks: [ssh]\n"), 0o644))

	var mu sync.Mutex
	var last DaemonSelection
	stop, err := WatchDaemonSelection(path, slog.Default(), func(sel DaemonSelection) error {
		mu.Lock()
		last = sel
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("checks: [dns, web]\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last.Checks) == 2 && last.Checks[0] == "dns"
	}, 5*time.Second, 20*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("checks: [smtp]\n"), 0o644))
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"dns", "web"}, last.Checks)
}
