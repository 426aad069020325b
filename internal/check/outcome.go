// Package check implements the diagnostic check framework: atomic check
// steps, named troubleshooters that produce them, the sequential execution
// engine with its timeout bridge, and the recurring daemon scheduler.
package check

// Status classifies the result of a single check step.
type Status string

const (
	// StatusPass means the step verified its condition.
	StatusPass Status = "pass"
	// StatusFail means the step found a problem; the outcome carries a
	// diagnosis and possibly a remediation hint.
	StatusFail Status = "fail"
	// StatusSkip means the step did not run, with a reason.
	StatusSkip Status = "skip"
)

// Outcome is the immutable result of running one check step.
type Outcome struct {
	Step        string `json:"step"`
	Status      Status `json:"status"`
	Diagnosis   string `json:"diagnosis,omitempty"`
	Remediation string `json:"remediation,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Pass returns a passing outcome with a short confirmation.
func Pass(diagnosis string) Outcome {
	return Outcome{Status: StatusPass, Diagnosis: diagnosis}
}

// Fail returns a failing outcome with a diagnosis and optional remediation.
func Fail(diagnosis, remediation string) Outcome {
	return Outcome{Status: StatusFail, Diagnosis: diagnosis, Remediation: remediation}
}

// Skip returns a skipped outcome with the reason the step did not run.
func Skip(reason string) Outcome {
	return Outcome{Status: StatusSkip, Reason: reason}
}

// withStep stamps the producing step's name onto the outcome.
func (o Outcome) withStep(name string) Outcome {
	o.Step = name
	return o
}
