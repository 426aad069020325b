package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, enableCORS bool) *httptest.Server {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "tool.sh"), []byte("#!/bin/sh\n"), 0o755))

	cfg := DefaultConfig()
	cfg.Root = root
	cfg.EnableCORS = enableCORS

	srv := httptest.NewServer(New(cfg, nil).router())
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_ServesFiles(t *testing.T) {
	srv := testServer(t, false)

	resp, err := http.Get(srv.URL + "/tool.sh")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(body))
}

func TestServer_NotFound(t *testing.T) {
	srv := testServer(t, false)

	resp, err := http.Get(srv.URL + "/missing.bin")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CORS(t *testing.T) {
	srv := testServer(t, true)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/tool.sh", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://elsewhere.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_RunShutsDownOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.Root = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(cfg, nil).Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
