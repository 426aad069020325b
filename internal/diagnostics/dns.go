package diagnostics

import "github.com/opsbox/opsbox/internal/check"

// DNS diagnoses local name resolution: resolver daemon state, resolver
// configuration, then an actual lookup through the system resolver.
type DNS struct {
	Probe string
}

// NewDNS returns the troubleshooter resolving its default probe name.
func NewDNS() check.Troubleshooter {
	return &DNS{Probe: "localhost"}
}

func (d *DNS) Name() string        { return "dns" }
func (d *DNS) Description() string { return "DNS resolution health (resolver, config, lookup)" }

func (d *DNS) BuildChecks() ([]check.Step, error) {
	steps := serviceSteps("systemd-resolved", "named", "dnsmasq", "unbound")
	steps = append(steps, resolverConfigSteps()...)
	steps = append(steps, resolveStep(d.Probe))
	return steps, nil
}
