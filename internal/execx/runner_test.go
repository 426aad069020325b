package execx

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestCapture(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := NewRunner(nil)

	code, out, err := r.Capture(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCapture_NonzeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := NewRunner(nil)

	code, _, err := r.Capture(context.Background(), "sh", "-c", "exit 3")
	if err != nil {
		t.Fatalf("nonzero exit must not be an error: %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	r := NewRunner(nil)

	code, err := r.Run(context.Background(), "opsbox-no-such-binary-xyzzy")
	if err == nil {
		t.Fatalf("launch failure must be an error")
	}
	if code != -1 {
		t.Fatalf("expected sentinel -1, got %d", code)
	}
}

func TestLookPath(t *testing.T) {
	if LookPath("opsbox-no-such-binary-xyzzy") {
		t.Fatalf("nonexistent binary reported present")
	}
}
