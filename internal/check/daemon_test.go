package check

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsbox/opsbox/internal/execx"
)

// flaky is a troubleshooter whose outcome is swapped between cycles.
type flaky struct {
	outcome Outcome
}

func (f *flaky) Name() string        { return "svc" }
func (f *flaky) Description() string { return "flaky service" }

func (f *flaky) BuildChecks() ([]Step, error) {
	return []Step{NewStep("probe", func(context.Context, execx.Runner) (Outcome, error) {
		return f.outcome, nil
	})}, nil
}

func newTestDaemon(t *testing.T, target *flaky, onChangeOnly bool) (*Daemon, *[]*Report) {
	t.Helper()

	r := NewRegistry()
	r.Register("svc", target.Description(), func() Troubleshooter { return target })
	engine := NewEngine(r, fakeRunner{}, nil)

	var emitted []*Report
	emitter := EmitterFunc(func(rep *Report) error {
		emitted = append(emitted, rep)
		return nil
	})

	d := NewDaemon(engine, emitter, DaemonConfig{
		Names:        []string{"svc"},
		Interval:     time.Hour,
		OnChangeOnly: onChangeOnly,
	}, nil)
	return d, &emitted
}

func TestDaemon_OnChangeOnly(t *testing.T) {
	target := &flaky{outcome: Pass("healthy")}
	d, emitted := newTestDaemon(t, target, true)
	ctx := context.Background()

	// First cycle has no prior state and always emits.
	d.RunCycle(ctx)
	require.Len(t, *emitted, 1)

	// Same status again: nothing new to report.
	d.RunCycle(ctx)
	require.Len(t, *emitted, 1)

	// Status flip emits exactly once.
	target.outcome = Fail("connection refused", "start the service")
	d.RunCycle(ctx)
	require.Len(t, *emitted, 2)
	require.Equal(t, StatusFail, (*emitted)[1].Status())

	// Steady failure stays silent.
	d.RunCycle(ctx)
	require.Len(t, *emitted, 2)
}

func TestDaemon_AlwaysEmitWhenNotOnChangeOnly(t *testing.T) {
	target := &flaky{outcome: Pass("healthy")}
	d, emitted := newTestDaemon(t, target, false)
	ctx := context.Background()

	d.RunCycle(ctx)
	d.RunCycle(ctx)
	require.Len(t, *emitted, 2)
}

func TestDaemon_ConsecutiveFailures(t *testing.T) {
	target := &flaky{outcome: Fail("down", "")}
	d, _ := newTestDaemon(t, target, false)
	ctx := context.Background()

	d.RunCycle(ctx)
	require.Equal(t, 1, d.FailureCount("svc"))

	d.RunCycle(ctx)
	require.Equal(t, 2, d.FailureCount("svc"))

	// A single pass resets the counter.
	target.outcome = Pass("back up")
	d.RunCycle(ctx)
	require.Equal(t, 0, d.FailureCount("svc"))

	target.outcome = Fail("down again", "")
	d.RunCycle(ctx)
	require.Equal(t, 1, d.FailureCount("svc"))
}

func TestDaemon_SetNamesRejectsUnknown(t *testing.T) {
	target := &flaky{outcome: Pass("healthy")}
	d, _ := newTestDaemon(t, target, false)

	require.Error(t, d.SetNames([]string{"svc", "ghost"}))
	require.NoError(t, d.SetNames([]string{"svc"}))
}

func TestDaemon_RunStopsOnCancel(t *testing.T) {
	target := &flaky{outcome: Pass("healthy")}
	d, emitted := newTestDaemon(t, target, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context still lets the in-flight cycle finish.
	require.NoError(t, d.Run(ctx))
	require.Len(t, *emitted, 1)
}

func TestDaemon_RunRejectsUnknownNamesAtStartup(t *testing.T) {
	target := &flaky{outcome: Pass("healthy")}
	r := NewRegistry()
	r.Register("svc", "", func() Troubleshooter { return target })
	engine := NewEngine(r, fakeRunner{}, nil)

	d := NewDaemon(engine, EmitterFunc(func(*Report) error { return nil }), DaemonConfig{
		Names:    []string{"missing"},
		Interval: time.Hour,
	}, nil)
	require.Error(t, d.Run(context.Background()))
}
