package check

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/opsbox/opsbox/internal/execx"
)

// Engine runs a selected set of troubleshooters sequentially and assembles
// a Report. Several steps have observable side effects on shared host state
// (packet capture, service probes), so nothing is ever run concurrently;
// the only concurrency in this package is the timeout bridge, which is
// fully joined or detached before the sequential flow resumes.
type Engine struct {
	registry *Registry
	runner   execx.Runner
	logger   *slog.Logger
}

// NewEngine creates an engine over the given catalog. A nil logger falls
// back to slog.Default.
func NewEngine(registry *Registry, runner execx.Runner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{registry: registry, runner: runner, logger: logger}
}

// Run executes the named checks in selection order and returns a complete
// report with exactly one entry per name. An unknown name is a fatal
// configuration error detected before any troubleshooter runs. Failures
// inside a troubleshooter (construction or step execution) are isolated:
// they become report data and never prevent any other selected check, or
// any later step of the same check, from running.
func (e *Engine) Run(ctx context.Context, names []string) (*Report, error) {
	if err := e.registry.Validate(names); err != nil {
		return nil, err
	}

	report := &Report{Timestamp: time.Now().UTC()}
	for _, name := range names {
		construct, _ := e.registry.Lookup(name)
		report.Entries = append(report.Entries, Entry{
			Name:     name,
			Outcomes: e.runOne(ctx, name, construct()),
		})
	}
	return report, nil
}

func (e *Engine) runOne(ctx context.Context, name string, ts Troubleshooter) []Outcome {
	steps, err := ts.BuildChecks()
	if err != nil {
		e.logger.Warn("troubleshooter failed to build", "check", name, "error", err)
		return []Outcome{
			Fail(fmt.Sprintf("could not prepare checks: %v", err), "").withStep(name),
		}
	}

	if len(steps) == 0 {
		return []Outcome{Skip("not supported on this platform").withStep(name)}
	}

	outcomes := make([]Outcome, 0, len(steps))
	for _, step := range steps {
		outcome, err := step.Run(ctx, e.runner)
		if err != nil {
			// Step boundary: execution errors become report data.
			outcome = Fail(err.Error(), "")
		}
		outcomes = append(outcomes, outcome.withStep(step.Name()))

		e.logger.Debug("step finished",
			"check", name, "step", step.Name(), "status", outcome.Status)
	}
	return outcomes
}
