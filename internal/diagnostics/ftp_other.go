//go:build !linux

package diagnostics

import "github.com/opsbox/opsbox/internal/check"

// FTP is not implemented off Linux; an empty check sequence tells the
// engine to report one Skip for it.
type FTP struct{}

// NewFTP returns the unsupported-platform variant.
func NewFTP() check.Troubleshooter { return &FTP{} }

func (f *FTP) Name() string        { return "ftp" }
func (f *FTP) Description() string { return "FTP server health (service, config, socket)" }

func (f *FTP) BuildChecks() ([]check.Step, error) { return nil, nil }
