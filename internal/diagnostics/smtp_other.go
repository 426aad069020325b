//go:build !linux

package diagnostics

import "github.com/opsbox/opsbox/internal/check"

// SMTP is not implemented off Linux.
type SMTP struct{}

// NewSMTP returns the unsupported-platform variant.
func NewSMTP() check.Troubleshooter { return &SMTP{} }

func (s *SMTP) Name() string        { return "smtp" }
func (s *SMTP) Description() string { return "SMTP server health (service, config, socket)" }

func (s *SMTP) BuildChecks() ([]check.Step, error) { return nil, nil }
