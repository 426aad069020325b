//go:build linux

package diagnostics

import "github.com/opsbox/opsbox/internal/check"

// SMTP diagnoses a local mail transfer agent. Linux only, like FTP.
type SMTP struct {
	Host string
	Port int
}

// NewSMTP returns the troubleshooter with its default local target.
func NewSMTP() check.Troubleshooter {
	return &SMTP{Host: "127.0.0.1", Port: 25}
}

func (s *SMTP) Name() string        { return "smtp" }
func (s *SMTP) Description() string { return "SMTP server health (service, config, socket)" }

func (s *SMTP) BuildChecks() ([]check.Step, error) {
	steps := serviceSteps("postfix", "exim4", "sendmail")
	steps = append(steps,
		configFileStep("/etc/postfix/main.cf", "/etc/exim4/exim4.conf", "/etc/mail/sendmail.cf"),
		listenPortStep(s.Port),
		tcpConnectStep(s.Host, s.Port),
	)
	return steps, nil
}
