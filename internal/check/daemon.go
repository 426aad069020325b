package check

import (
	"context"
	"sync"
	"time"

	"log/slog"
)

// DaemonConfig holds the recognized daemon options.
type DaemonConfig struct {
	// Names selects which catalog entries run each cycle.
	Names []string
	// Interval is the wait between cycles.
	Interval time.Duration
	// OnChangeOnly emits a report only when some check's status differs
	// from the immediately preceding cycle. The first cycle always emits.
	OnChangeOnly bool
}

// checkState is the daemon's per-check memory. Single writer: the daemon
// loop itself, once per cycle.
type checkState struct {
	LastStatus          Status
	LastSeen            time.Time
	ConsecutiveFailures int
}

// Daemon drives the engine on an interval, tracking status transitions
// between cycles. All check failures during a cycle are report data; the
// only fatal condition is startup validation of the configured names.
type Daemon struct {
	engine  *Engine
	emitter Emitter
	cfg     DaemonConfig
	logger  *slog.Logger

	mu    sync.RWMutex
	names []string
	state map[string]checkState
}

// NewDaemon builds a daemon. The emitter receives every report the daemon
// decides to publish; pass a MultiEmitter for several sinks.
func NewDaemon(engine *Engine, emitter Emitter, cfg DaemonConfig, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		engine:  engine,
		emitter: emitter,
		cfg:     cfg,
		logger:  logger,
		names:   append([]string(nil), cfg.Names...),
		state:   make(map[string]checkState),
	}
}

// SetNames swaps the daemon's check selection. Unknown names are rejected.
// The new selection takes effect at the next cycle boundary.
func (d *Daemon) SetNames(names []string) error {
	if err := d.engine.registry.Validate(names); err != nil {
		return err
	}
	d.mu.Lock()
	d.names = append([]string(nil), names...)
	d.mu.Unlock()
	d.logger.Info("check selection updated", "names", names)
	return nil
}

// FailureCount reports how many consecutive cycles the named check has
// failed. Safe for concurrent readers; reflects the last finished cycle.
func (d *Daemon) FailureCount(name string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state[name].ConsecutiveFailures
}

// Run validates the configured names and then loops until ctx is cancelled.
// Cancellation is cooperative and checked only between cycles: an in-flight
// cycle runs to completion and its report is either fully emitted or fully
// dropped, never partially published.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.engine.registry.Validate(d.cfg.Names); err != nil {
		return err
	}

	d.logger.Info("check daemon started",
		"names", d.cfg.Names, "interval", d.cfg.Interval, "on_change_only", d.cfg.OnChangeOnly)

	for {
		d.RunCycle(ctx)

		select {
		case <-ctx.Done():
			d.logger.Info("check daemon stopping")
			return nil
		case <-time.After(d.cfg.Interval):
		}
	}
}

// RunCycle performs one full pass: run the engine, diff against prior
// state, decide whether to emit, update state. Exposed so a one-off tick
// can be triggered without the interval loop.
func (d *Daemon) RunCycle(ctx context.Context) {
	d.mu.RLock()
	names := append([]string(nil), d.names...)
	d.mu.RUnlock()

	report, err := d.engine.Run(ctx, names)
	if err != nil {
		// Names were validated at startup and on every swap; hitting this
		// means the selection changed under a removed catalog entry.
		d.logger.Error("cycle aborted", "error", err)
		return
	}

	changed := false
	next := make(map[string]checkState, len(report.Entries))
	d.mu.RLock()
	for _, entry := range report.Entries {
		prev, seen := d.state[entry.Name]
		status := entry.Status()

		st := checkState{LastStatus: status, LastSeen: report.Timestamp}
		if status == StatusFail {
			st.ConsecutiveFailures = prev.ConsecutiveFailures + 1
		}
		next[entry.Name] = st

		if !seen || prev.LastStatus != status {
			changed = true
		}
	}
	d.mu.RUnlock()

	if !d.cfg.OnChangeOnly || changed {
		if err := d.emitter.Emit(report); err != nil {
			d.logger.Error("emitting report", "error", err)
		}
	}

	d.mu.Lock()
	for name, st := range next {
		d.state[name] = st
	}
	d.mu.Unlock()
}
