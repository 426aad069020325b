//go:build linux

package diagnostics

import (
	"time"

	"github.com/opsbox/opsbox/internal/check"
)

// FTP diagnoses a local FTP server. Only implemented for Linux hosts; on
// other platforms the troubleshooter produces no steps and the engine
// reports a single Skip.
type FTP struct {
	Host            string
	Port            int
	CaptureDeadline time.Duration
}

// NewFTP returns the troubleshooter with its default local target.
func NewFTP() check.Troubleshooter {
	return &FTP{Host: "127.0.0.1", Port: 21, CaptureDeadline: 2 * time.Second}
}

func (f *FTP) Name() string        { return "ftp" }
func (f *FTP) Description() string { return "FTP server health (service, config, socket)" }

func (f *FTP) BuildChecks() ([]check.Step, error) {
	steps := serviceSteps("vsftpd", "proftpd")
	steps = append(steps,
		configFileStep("/etc/vsftpd.conf", "/etc/vsftpd/vsftpd.conf", "/etc/proftpd/proftpd.conf"),
		listenPortStep(f.Port),
		tcpConnectStep(f.Host, f.Port),
	)
	steps = append(steps, captureSteps(f.Port, f.CaptureDeadline)...)
	return steps, nil
}
