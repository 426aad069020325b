package check

import (
	"context"
	"fmt"
	"time"
)

// OnTimeout selects the outcome produced when a bridged operation exceeds
// its deadline.
type OnTimeout int

const (
	// TimeoutFails is the default: exceeding the deadline is a failure.
	TimeoutFails OnTimeout = iota
	// TimeoutPasses is for steps whose success condition is the absence of
	// an event within the window (e.g. no unexpected traffic observed).
	TimeoutPasses
)

// RunWithDeadline gives a blocking operation a cancellable deadline. The
// operation runs on a one-shot goroutine with a context that is cancelled
// when the deadline fires; the calling goroutine blocks until either the
// operation finishes or the timer wins. This is the only concurrency in the
// check engine, and because the engine is strictly sequential at most one
// bridged task is ever in flight.
//
// When the deadline fires first the worker is detached: its context is
// cancelled, its eventual result is discarded, and the caller gets the
// timeout outcome immediately.
func RunWithDeadline(ctx context.Context, d time.Duration, mode OnTimeout, fn func(ctx context.Context) (Outcome, error)) (Outcome, error) {
	type result struct {
		outcome Outcome
		err     error
	}

	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		o, err := fn(opCtx)
		done <- result{o, err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.outcome, res.err
	case <-timer.C:
		cancel()
		if mode == TimeoutPasses {
			return Pass(fmt.Sprintf("no matching event within %dms", d.Milliseconds())), nil
		}
		return Fail(fmt.Sprintf("timed out after %dms", d.Milliseconds()), ""), nil
	case <-ctx.Done():
		cancel()
		return Outcome{}, ctx.Err()
	}
}
