//go:build linux

package diagnostics

import (
	"context"
	"fmt"
	"strings"

	"github.com/opsbox/opsbox/internal/check"
	"github.com/opsbox/opsbox/internal/execx"
)

// serviceSteps returns the service-manager checks for the given unit names.
// Both systemd and OpenRC are probed; whichever manager is absent reports a
// Skip rather than a Fail, so the steps are safe on any distribution.
func serviceSteps(units ...string) []check.Step {
	return []check.Step{
		systemdServiceStep(units...),
		openrcServiceStep(units...),
	}
}

func systemdServiceStep(units ...string) check.Step {
	return check.NewStep("systemd service", func(ctx context.Context, r execx.Runner) (check.Outcome, error) {
		if !execx.LookPath("systemctl") {
			return check.Skip("systemctl not found on host"), nil
		}
		for _, unit := range units {
			code, out, err := r.Capture(ctx, "systemctl", "show", unit,
				"--property=ActiveState,MainPID,ExecMainStartTimestamp")
			if err != nil {
				return check.Outcome{}, fmt.Errorf("querying systemd unit %s: %w", unit, err)
			}
			if code != 0 {
				continue
			}
			props := parseProperties(out)
			switch props["ActiveState"] {
			case "active":
				return check.Pass(fmt.Sprintf(
					"systemd unit %s is active (pid %s, since %s)",
					unit, props["MainPID"], props["ExecMainStartTimestamp"])), nil
			case "failed":
				return check.Fail(
					fmt.Sprintf("systemd unit %s has failed", unit),
					fmt.Sprintf("journalctl -u %s, then systemctl restart %s", unit, unit),
				), nil
			}
		}
		return check.Fail(
			fmt.Sprintf("none of the systemd units are active: %s", strings.Join(units, ", ")),
			fmt.Sprintf("systemctl start %s", units[0]),
		), nil
	})
}

func openrcServiceStep(units ...string) check.Step {
	return check.NewStep("openrc service", func(ctx context.Context, r execx.Runner) (check.Outcome, error) {
		if !execx.LookPath("rc-service") {
			return check.Skip("rc-service not found on host"), nil
		}
		for _, unit := range units {
			_, out, err := r.Capture(ctx, "rc-service", unit, "status")
			if err != nil {
				return check.Outcome{}, fmt.Errorf("querying openrc service %s: %w", unit, err)
			}
			if strings.Contains(out, "status: started") {
				return check.Pass(fmt.Sprintf("openrc service %s is started", unit)), nil
			}
		}
		return check.Fail(
			fmt.Sprintf("none of the openrc services are started: %s", strings.Join(units, ", ")),
			fmt.Sprintf("rc-service %s start", units[0]),
		), nil
	})
}

// parseProperties parses `systemctl show` KEY=VALUE output.
func parseProperties(out string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if k, v, ok := strings.Cut(strings.TrimSpace(line), "="); ok {
			props[k] = v
		}
	}
	return props
}
