package diagnostics

import (
	"fmt"

	"github.com/opsbox/opsbox/internal/check"
)

// Web diagnoses a local web server: service manager state, listening
// socket, then an HTTP round trip against it.
type Web struct {
	Host string
	Port int
}

// NewWeb returns the troubleshooter with its default local target.
func NewWeb() check.Troubleshooter {
	return &Web{Host: "127.0.0.1", Port: 80}
}

func (w *Web) Name() string        { return "web" }
func (w *Web) Description() string { return "web server health (service, socket, response)" }

func (w *Web) BuildChecks() ([]check.Step, error) {
	steps := serviceSteps("nginx", "apache2", "httpd", "caddy")
	steps = append(steps,
		listenPortStep(w.Port),
		tcpConnectStep(w.Host, w.Port),
		httpProbeStep(fmt.Sprintf("http://%s:%d/", w.Host, w.Port)),
	)
	return steps, nil
}

// HTTP diagnoses reachability of one HTTP endpoint without assuming it is
// served from this host.
type HTTP struct {
	URL string
}

// NewHTTP returns the troubleshooter probing its default local URL.
func NewHTTP() check.Troubleshooter {
	return &HTTP{URL: "http://127.0.0.1/"}
}

func (h *HTTP) Name() string        { return "http" }
func (h *HTTP) Description() string { return "HTTP endpoint reachability" }

func (h *HTTP) BuildChecks() ([]check.Step, error) {
	if h.URL == "" {
		return nil, fmt.Errorf("no URL configured for http check")
	}
	return []check.Step{httpProbeStep(h.URL)}, nil
}
