// Package elk bootstraps the log-shipping side of an ELK pipeline: it
// renders beat shipper configurations pointed at a collector host and can
// enable the shipper services.
package elk

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/renameio/v2"

	"github.com/opsbox/opsbox/internal/execx"
)

// Pipeline describes where shipped logs should go.
type Pipeline struct {
	// Host is the collector's address.
	Host string
	// LogstashPort receives beat output (default 5044).
	LogstashPort int
	// KibanaPort serves dashboards (default 5601).
	KibanaPort int
}

// Defaults fills unset ports.
func (p Pipeline) Defaults() Pipeline {
	if p.LogstashPort == 0 {
		p.LogstashPort = 5044
	}
	if p.KibanaPort == 0 {
		p.KibanaPort = 5601
	}
	return p
}

// ShipperNames are the beat services the bootstrap configures.
var ShipperNames = []string{"filebeat", "auditbeat"}

// RenderConfigs writes one YAML config per shipper into dir, atomically.
// Returns the written file paths.
func RenderConfigs(dir string, p Pipeline) ([]string, error) {
	p = p.Defaults()
	if p.Host == "" {
		return nil, fmt.Errorf("no collector host configured")
	}

	var written []string
	for name, tmpl := range shipperTemplates {
		var b strings.Builder
		if err := tmpl.Execute(&b, p); err != nil {
			return nil, fmt.Errorf("rendering %s config: %w", name, err)
		}
		path := filepath.Join(dir, name+".yml")
		if err := renameio.WriteFile(path, []byte(b.String()), 0o600); err != nil {
			return nil, fmt.Errorf("writing %s config: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// EnableShippers starts and enables the beat services through the service
// manager. Missing shippers are reported, not fatal, so a host with only
// filebeat installed still ends up shipping logs.
func EnableShippers(ctx context.Context, r execx.Runner) []error {
	var errs []error
	for _, name := range ShipperNames {
		if !execx.LookPath(name) {
			errs = append(errs, fmt.Errorf("%s is not installed", name))
			continue
		}
		code, out, err := r.Capture(ctx, "systemctl", "enable", "--now", name)
		if err != nil {
			errs = append(errs, fmt.Errorf("launching systemctl for %s: %w", name, err))
			continue
		}
		if code != 0 {
			errs = append(errs, fmt.Errorf("enabling %s failed (status %d): %s",
				name, code, strings.TrimSpace(out)))
		}
	}
	return errs
}

var shipperTemplates = map[string]*template.Template{
	"filebeat": template.Must(template.New("filebeat").Parse(`filebeat.inputs:
  - type: filestream
    id: system-logs
    paths:
      - /var/log/*.log
      - /var/log/syslog
      - /var/log/auth.log

output.logstash:
  hosts: ["{{.Host}}:{{.LogstashPort}}"]

setup.kibana:
  host: "{{.Host}}:{{.KibanaPort}}"
`)),
	"auditbeat": template.Must(template.New("auditbeat").Parse(`auditbeat.modules:
  - module: auditd
  - module: file_integrity
    paths:
      - /bin
      - /usr/bin
      - /sbin
      - /usr/sbin
      - /etc

output.logstash:
  hosts: ["{{.Host}}:{{.LogstashPort}}"]

setup.kibana:
  host: "{{.Host}}:{{.KibanaPort}}"
`)),
}
