package check

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunWithDeadline_CompletesInTime(t *testing.T) {
	outcome, err := RunWithDeadline(context.Background(), time.Second, TimeoutFails,
		func(context.Context) (Outcome, error) {
			return Pass("done quickly"), nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusPass || outcome.Diagnosis != "done quickly" {
		t.Fatalf("inner outcome not propagated: %+v", outcome)
	}
}

func TestRunWithDeadline_TimeoutFails(t *testing.T) {
	started := time.Now()
	outcome, err := RunWithDeadline(context.Background(), 50*time.Millisecond, TimeoutFails,
		func(ctx context.Context) (Outcome, error) {
			<-ctx.Done()
			return Pass("too late"), nil
		})
	elapsed := time.Since(started)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusFail {
		t.Fatalf("expected Fail on timeout, got %s", outcome.Status)
	}
	if !strings.Contains(outcome.Diagnosis, "timed out after 50ms") {
		t.Fatalf("unexpected diagnosis %q", outcome.Diagnosis)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("caller blocked well past the deadline: %v", elapsed)
	}
}

func TestRunWithDeadline_TimeoutPasses(t *testing.T) {
	outcome, err := RunWithDeadline(context.Background(), 50*time.Millisecond, TimeoutPasses,
		func(ctx context.Context) (Outcome, error) {
			<-ctx.Done()
			return Fail("saw something", ""), nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusPass {
		t.Fatalf("absence-of-event mode should pass on timeout, got %s", outcome.Status)
	}
	if !strings.Contains(outcome.Diagnosis, "within 50ms") {
		t.Fatalf("unexpected diagnosis %q", outcome.Diagnosis)
	}
}

func TestRunWithDeadline_InnerError(t *testing.T) {
	boom := errors.New("capture tool missing")
	_, err := RunWithDeadline(context.Background(), time.Second, TimeoutFails,
		func(context.Context) (Outcome, error) {
			return Outcome{}, boom
		})
	if !errors.Is(err, boom) {
		t.Fatalf("inner error should surface unchanged, got %v", err)
	}
}

func TestRunWithDeadline_OuterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunWithDeadline(ctx, time.Second, TimeoutFails,
		func(ctx context.Context) (Outcome, error) {
			<-ctx.Done()
			return Outcome{}, ctx.Err()
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
