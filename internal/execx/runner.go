// Package execx provides synchronous external command execution for the
// toolkit. Callers get the process exit status back and decide for themselves
// what a nonzero status means; only failures to launch the process at all are
// reported as errors.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"log/slog"
)

// Runner executes external commands. Run inherits the controlling terminal,
// Capture collects combined output. Both block for the full duration of the
// command; deadlines are the caller's responsibility via ctx.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (int, error)
	Capture(ctx context.Context, name string, args ...string) (int, string, error)
}

// ExecRunner is the standard Runner backed by os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// NewRunner creates an ExecRunner. A nil logger falls back to slog.Default.
func NewRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger}
}

// Run executes the command with stdin, stdout and stderr inherited from the
// current process. The returned int is the command's exit status. An error is
// returned only when the command could not be started (missing binary,
// permission problem); a nonzero exit status is not an error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.logger.Debug("running command", "name", name, "args", args)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("starting %s: %w", name, err)
	}
	return 0, nil
}

// Capture executes the command and returns its exit status together with the
// combined stdout and stderr text. Error semantics match Run.
func (r *ExecRunner) Capture(ctx context.Context, name string, args ...string) (int, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	r.logger.Debug("capturing command", "name", name, "args", args)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), buf.String(), nil
		}
		return -1, buf.String(), fmt.Errorf("starting %s: %w", name, err)
	}
	return 0, buf.String(), nil
}

// LookPath reports whether the named binary is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
