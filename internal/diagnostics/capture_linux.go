//go:build linux

package diagnostics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opsbox/opsbox/internal/check"
	"github.com/opsbox/opsbox/internal/execx"
)

// captureSteps returns the traffic-observation checks for a port. tcpdump
// blocks until it sees a matching packet and offers no cancellable wait of
// its own, so the step runs through the engine's timeout bridge: seeing
// traffic before the deadline is a pass, an empty window is a fail with a
// timeout diagnosis.
func captureSteps(port int, deadline time.Duration) []check.Step {
	return []check.Step{trafficObservedStep(port, deadline)}
}

func trafficObservedStep(port int, deadline time.Duration) check.Step {
	return check.NewStep("traffic observed", func(ctx context.Context, r execx.Runner) (check.Outcome, error) {
		if !execx.LookPath("tcpdump") {
			return check.Skip("tcpdump not found on host"), nil
		}
		return check.RunWithDeadline(ctx, deadline, check.TimeoutFails,
			func(ctx context.Context) (check.Outcome, error) {
				code, out, err := r.Capture(ctx, "tcpdump",
					"-c", "1", "-n", "-q", fmt.Sprintf("port %d", port))
				if err != nil {
					return check.Outcome{}, fmt.Errorf("running tcpdump: %w", err)
				}
				if code != 0 {
					return check.Fail(
						fmt.Sprintf("tcpdump exited with status %d: %s", code, firstLine(out)),
						"packet capture usually needs root",
					), nil
				}
				return check.Pass(fmt.Sprintf("saw traffic on port %d", port)), nil
			})
	})
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
