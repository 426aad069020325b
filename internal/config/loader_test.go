package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := NewLoader(nil).Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, "90s", cfg.Daemon.Interval)
	assert.False(t, cfg.Daemon.OnChangeOnly)
	assert.Equal(t, "0.0.0.0", cfg.Serve.Host)
	assert.Equal(t, 8080, cfg.Serve.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
daemon:
  checks: [ssh, dns]
  interval: 30s
  on_change_only: true
serve:
  port: 9000
`), 0o644))

	cfg, err := NewLoader(nil).WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"ssh", "dns"}, cfg.Daemon.Checks)
	assert.Equal(t, "30s", cfg.Daemon.Interval)
	assert.True(t, cfg.Daemon.OnChangeOnly)
	assert.Equal(t, 9000, cfg.Serve.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "auto", cfg.Log.Format)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := NewLoader(nil).WithConfigFile(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPSBOX_LOG_LEVEL", "error")

	cfg, err := NewLoader(nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestReadDaemonSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checks: [web, http]\n"), 0o644))

	sel, err := ReadDaemonSelection(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "http"}, sel.Checks)

	_, err = ReadDaemonSelection(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("checks: {not a list"), 0o644))
	_, err = ReadDaemonSelection(bad)
	require.Error(t, err)
}
