package check

import (
	"context"

	"github.com/opsbox/opsbox/internal/execx"
)

// Step is one atomic diagnostic operation. A step inspects, it never
// repairs: implementations must not mutate host state. An error returned
// from Run is caught at the step boundary by the engine and converted to a
// Fail outcome, so a misbehaving step can never abort a run.
type Step interface {
	Name() string
	Run(ctx context.Context, r execx.Runner) (Outcome, error)
}

// StepFunc adapts a plain function to the Step interface.
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, r execx.Runner) (Outcome, error)
}

func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Run(ctx context.Context, r execx.Runner) (Outcome, error) {
	return s.Fn(ctx, r)
}

// NewStep builds a StepFunc.
func NewStep(name string, fn func(ctx context.Context, r execx.Runner) (Outcome, error)) Step {
	return StepFunc{StepName: name, Fn: fn}
}

// Troubleshooter produces the ordered check sequence for one subsystem.
// BuildChecks orders coarse diagnostics before fine ones (process running
// before config valid). A build error stands in for the whole troubleshooter
// as a single synthetic Fail; an empty sequence means the troubleshooter has
// nothing to do on this platform and is rendered as a single Skip.
type Troubleshooter interface {
	Name() string
	Description() string
	BuildChecks() ([]Step, error)
}
