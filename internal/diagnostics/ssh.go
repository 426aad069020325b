package diagnostics

import (
	"time"

	"github.com/opsbox/opsbox/internal/check"
)

// SSH diagnoses the host's SSH server, coarse to fine: service manager
// state, then a listening socket, then a real TCP handshake, then live
// traffic on the port.
type SSH struct {
	Host            string
	Port            int
	CaptureDeadline time.Duration
}

// NewSSH returns the troubleshooter with its default local target.
func NewSSH() check.Troubleshooter {
	return &SSH{Host: "127.0.0.1", Port: 22, CaptureDeadline: 2 * time.Second}
}

func (s *SSH) Name() string        { return "ssh" }
func (s *SSH) Description() string { return "SSH server health (service, socket, traffic)" }

func (s *SSH) BuildChecks() ([]check.Step, error) {
	steps := serviceSteps("sshd", "ssh")
	steps = append(steps,
		listenPortStep(s.Port),
		tcpConnectStep(s.Host, s.Port),
	)
	steps = append(steps, captureSteps(s.Port, s.CaptureDeadline)...)
	return steps, nil
}
