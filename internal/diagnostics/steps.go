package diagnostics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/opsbox/opsbox/internal/check"
	"github.com/opsbox/opsbox/internal/execx"
)

const connectTimeout = 5 * time.Second

// tcpConnectStep verifies a TCP handshake against host:port.
func tcpConnectStep(host string, port int) check.Step {
	return check.NewStep("tcp connect", func(ctx context.Context, _ execx.Runner) (check.Outcome, error) {
		addr := net.JoinHostPort(host, fmt.Sprint(port))
		d := net.Dialer{Timeout: connectTimeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return check.Fail(
				fmt.Sprintf("could not connect to %s: %v", addr, err),
				"confirm the service is running and the port is not firewalled",
			), nil
		}
		conn.Close()
		return check.Pass(fmt.Sprintf("connected to %s", addr)), nil
	})
}

// listenPortStep verifies some local process is listening on port.
func listenPortStep(port int) check.Step {
	return check.NewStep("listening socket", func(ctx context.Context, _ execx.Runner) (check.Outcome, error) {
		conns, err := gopsnet.ConnectionsWithContext(ctx, "tcp")
		if err != nil {
			return check.Outcome{}, fmt.Errorf("listing sockets: %w", err)
		}
		for _, c := range conns {
			if c.Status != "LISTEN" || c.Laddr.Port != uint32(port) {
				continue
			}
			owner := "unknown"
			if c.Pid > 0 {
				if p, err := process.NewProcessWithContext(ctx, c.Pid); err == nil {
					if name, err := p.NameWithContext(ctx); err == nil {
						owner = name
					}
				}
			}
			return check.Pass(fmt.Sprintf("port %d held by %s (pid %d)", port, owner, c.Pid)), nil
		}
		return check.Fail(
			fmt.Sprintf("no process is listening on port %d", port),
			"start the service or check its listen address",
		), nil
	})
}

// processRunningStep verifies a process with one of the given names exists.
func processRunningStep(names ...string) check.Step {
	return check.NewStep("process running", func(ctx context.Context, _ execx.Runner) (check.Outcome, error) {
		procs, err := process.ProcessesWithContext(ctx)
		if err != nil {
			return check.Outcome{}, fmt.Errorf("listing processes: %w", err)
		}
		for _, p := range procs {
			name, err := p.NameWithContext(ctx)
			if err != nil {
				continue
			}
			for _, want := range names {
				if name == want {
					return check.Pass(fmt.Sprintf("process %s is running (pid %d)", name, p.Pid)), nil
				}
			}
		}
		return check.Fail(
			fmt.Sprintf("no process named %s found", strings.Join(names, " or ")),
			"",
		), nil
	})
}

// httpProbeStep issues a GET and verifies the status code is below 500.
// Interpretation of the response belongs to this step, never to the engine.
func httpProbeStep(url string) check.Step {
	return check.NewStep("http probe", func(ctx context.Context, _ execx.Runner) (check.Outcome, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return check.Outcome{}, fmt.Errorf("building request for %s: %w", url, err)
		}
		client := &http.Client{Timeout: connectTimeout}
		resp, err := client.Do(req)
		if err != nil {
			return check.Fail(
				fmt.Sprintf("request to %s failed: %v", url, err),
				"confirm the web server is up and the URL is reachable",
			), nil
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return check.Fail(
				fmt.Sprintf("%s answered %s", url, resp.Status),
				"inspect the server's error log",
			), nil
		}
		return check.Pass(fmt.Sprintf("%s answered %s", url, resp.Status)), nil
	})
}

// configFileStep verifies a config file exists and is non-empty. Paths are
// tried in order; the first one present wins.
func configFileStep(paths ...string) check.Step {
	return check.NewStep("config file", func(_ context.Context, _ execx.Runner) (check.Outcome, error) {
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				continue
			}
			if info.Size() == 0 {
				return check.Fail(
					fmt.Sprintf("config file %s is empty", p),
					"restore the configuration from backup",
				), nil
			}
			return check.Pass(fmt.Sprintf("config file %s present (%d bytes)", p, info.Size())), nil
		}
		return check.Fail(
			fmt.Sprintf("no config file found at %s", strings.Join(paths, ", ")),
			"",
		), nil
	})
}

// resolveStep verifies a hostname resolves through the system resolver.
func resolveStep(hostname string) check.Step {
	return check.NewStep("name resolution", func(ctx context.Context, _ execx.Runner) (check.Outcome, error) {
		resolver := &net.Resolver{}
		rctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		addrs, err := resolver.LookupHost(rctx, hostname)
		if err != nil {
			return check.Fail(
				fmt.Sprintf("could not resolve %s: %v", hostname, err),
				"check /etc/resolv.conf and upstream DNS reachability",
			), nil
		}
		return check.Pass(fmt.Sprintf("%s resolves to %s", hostname, strings.Join(addrs, ", "))), nil
	})
}
