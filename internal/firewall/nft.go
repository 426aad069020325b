// Package firewall generates nftables rulesets: a quick-setup ruleset built
// from the ports the host is actually listening on, and NAT redirect rules.
// Generation is pure text; applying a ruleset goes through the process
// executor and is always an explicit, separate action.
package firewall

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/opsbox/opsbox/internal/execx"
	"github.com/opsbox/opsbox/internal/sysinfo"
)

// ELK service ports allowed towards a log collector host.
var elkPorts = []int{5044, 5601, 8080}

// Config describes a quick-setup ruleset.
type Config struct {
	TCPPorts         []int
	UDPPorts         []int
	ELKHost          string
	AllowEstablished bool
}

// FromListeningPorts builds a Config that keeps every currently open
// listener reachable.
func FromListeningPorts(ctx context.Context) (Config, error) {
	ports, err := sysinfo.ListeningPorts(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("inspecting listening ports: %w", err)
	}

	tcpSeen := map[int]bool{}
	udpSeen := map[int]bool{}
	var cfg Config
	for _, p := range ports {
		port := int(p.Port)
		switch p.Proto {
		case "tcp":
			if !tcpSeen[port] {
				tcpSeen[port] = true
				cfg.TCPPorts = append(cfg.TCPPorts, port)
			}
		case "udp":
			if !udpSeen[port] {
				udpSeen[port] = true
				cfg.UDPPorts = append(cfg.UDPPorts, port)
			}
		}
	}
	sort.Ints(cfg.TCPPorts)
	sort.Ints(cfg.UDPPorts)
	return cfg, nil
}

// Ruleset renders the nftables configuration for cfg. Inbound traffic is
// dropped by default; loopback, ICMP, the listed ports, and (optionally)
// established connections and the ELK host are allowed.
func Ruleset(cfg Config) string {
	var b strings.Builder

	b.WriteString("#!/usr/sbin/nft -f\n\n")
	b.WriteString("flush ruleset\n\n")
	b.WriteString("table inet filter {\n")
	b.WriteString("\tchain input {\n")
	b.WriteString("\t\ttype filter hook input priority 0; policy drop;\n\n")
	b.WriteString("\t\tiif lo accept\n")
	b.WriteString("\t\tip protocol icmp accept\n")

	if cfg.AllowEstablished {
		b.WriteString("\t\tct state established,related accept\n")
	}
	if len(cfg.TCPPorts) > 0 {
		fmt.Fprintf(&b, "\t\ttcp dport { %s } accept\n", joinPorts(cfg.TCPPorts))
	}
	if len(cfg.UDPPorts) > 0 {
		fmt.Fprintf(&b, "\t\tudp dport { %s } accept\n", joinPorts(cfg.UDPPorts))
	}
	if cfg.ELKHost != "" {
		fmt.Fprintf(&b, "\t\tip saddr %s tcp dport { %s } accept\n",
			cfg.ELKHost, joinPorts(elkPorts))
	}

	b.WriteString("\t}\n")
	b.WriteString("\tchain output {\n")
	b.WriteString("\t\ttype filter hook output priority 0; policy accept;\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String()
}

// NATRedirect renders a ruleset redirecting traffic arriving for fromAddr
// on port to toAddr.
func NATRedirect(fromAddr, toAddr string, port int) string {
	var b strings.Builder
	b.WriteString("#!/usr/sbin/nft -f\n\n")
	b.WriteString("table ip nat {\n")
	b.WriteString("\tchain prerouting {\n")
	b.WriteString("\t\ttype nat hook prerouting priority dstnat;\n")
	fmt.Fprintf(&b, "\t\tip daddr %s tcp dport %d dnat to %s\n", fromAddr, port, toAddr)
	b.WriteString("\t}\n")
	b.WriteString("\tchain postrouting {\n")
	b.WriteString("\t\ttype nat hook postrouting priority srcnat;\n")
	b.WriteString("\t\tmasquerade\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String()
}

// WriteFile writes the ruleset atomically so a half-written firewall config
// can never be loaded.
func WriteFile(path, ruleset string) error {
	if err := renameio.WriteFile(path, []byte(ruleset), 0o644); err != nil {
		return fmt.Errorf("writing ruleset to %s: %w", path, err)
	}
	return nil
}

// Apply loads a ruleset file through nft. The exit status interpretation
// lives here, with the caller of the executor.
func Apply(ctx context.Context, r execx.Runner, path string) error {
	code, out, err := r.Capture(ctx, "nft", "-f", path)
	if err != nil {
		return fmt.Errorf("launching nft: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("nft rejected the ruleset (status %d): %s", code, strings.TrimSpace(out))
	}
	return nil
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ", ")
}
