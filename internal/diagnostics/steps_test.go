package diagnostics

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opsbox/opsbox/internal/check"
)

type nopRunner struct{}

func (nopRunner) Run(context.Context, string, ...string) (int, error) {
	return 0, nil
}

func (nopRunner) Capture(context.Context, string, ...string) (int, string, error) {
	return 0, "", nil
}

func runStep(t *testing.T, s check.Step) check.Outcome {
	t.Helper()
	outcome, err := s.Run(context.Background(), nopRunner{})
	if err != nil {
		t.Fatalf("step %s: %v", s.Name(), err)
	}
	return outcome
}

func TestTCPConnectStep(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	outcome := runStep(t, tcpConnectStep("127.0.0.1", port))
	if outcome.Status != check.StatusPass {
		t.Fatalf("expected pass against live listener: %+v", outcome)
	}

	ln.Close()
	outcome = runStep(t, tcpConnectStep("127.0.0.1", port))
	if outcome.Status != check.StatusFail {
		t.Fatalf("expected fail against closed port: %+v", outcome)
	}
	if outcome.Remediation == "" {
		t.Fatalf("connect failure should suggest a fix")
	}
}

func TestHTTPProbeStep(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if outcome := runStep(t, httpProbeStep(srv.URL+"/")); outcome.Status != check.StatusPass {
		t.Fatalf("expected pass for 200: %+v", outcome)
	}

	// 4xx means the server is up and answering; only 5xx is a failure.
	if outcome := runStep(t, httpProbeStep(srv.URL+"/missing")); outcome.Status != check.StatusPass {
		t.Fatalf("expected pass for 404: %+v", outcome)
	}

	outcome := runStep(t, httpProbeStep(srv.URL+"/broken"))
	if outcome.Status != check.StatusFail {
		t.Fatalf("expected fail for 500: %+v", outcome)
	}

	srv.Close()
	if outcome := runStep(t, httpProbeStep(srv.URL + "/")); outcome.Status != check.StatusFail {
		t.Fatalf("expected fail for unreachable server: %+v", outcome)
	}
}

func TestConfigFileStep(t *testing.T) {
	dir := t.TempDir()

	full := filepath.Join(dir, "full.conf")
	if err := os.WriteFile(full, []byte("Port 22\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	empty := filepath.Join(dir, "empty.conf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	missing := filepath.Join(dir, "missing.conf")

	if outcome := runStep(t, configFileStep(missing, full)); outcome.Status != check.StatusPass {
		t.Fatalf("first existing path should win: %+v", outcome)
	}

	outcome := runStep(t, configFileStep(empty))
	if outcome.Status != check.StatusFail || !strings.Contains(outcome.Diagnosis, "empty") {
		t.Fatalf("empty config should fail: %+v", outcome)
	}

	if outcome := runStep(t, configFileStep(missing)); outcome.Status != check.StatusFail {
		t.Fatalf("missing config should fail: %+v", outcome)
	}
}

func TestResolveStep(t *testing.T) {
	if outcome := runStep(t, resolveStep("localhost")); outcome.Status != check.StatusPass {
		t.Fatalf("localhost should resolve: %+v", outcome)
	}
}

func TestListenPortStep_NothingListening(t *testing.T) {
	// Grab a free port and release it so nothing holds it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	outcome := runStep(t, listenPortStep(port))
	if outcome.Status != check.StatusFail {
		t.Fatalf("expected fail for unheld port: %+v", outcome)
	}
}
