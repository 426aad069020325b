package firewall

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleset(t *testing.T) {
	out := Ruleset(Config{
		TCPPorts:         []int{22, 80, 443},
		UDPPorts:         []int{53},
		ELKHost:          "10.0.0.5",
		AllowEstablished: true,
	})

	assert.Contains(t, out, "policy drop;")
	assert.Contains(t, out, "iif lo accept")
	assert.Contains(t, out, "tcp dport { 22, 80, 443 } accept")
	assert.Contains(t, out, "udp dport { 53 } accept")
	assert.Contains(t, out, "ip saddr 10.0.0.5 tcp dport { 5044, 5601, 8080 } accept")
	assert.Contains(t, out, "ct state established,related accept")
}

func TestRuleset_Minimal(t *testing.T) {
	out := Ruleset(Config{})

	assert.Contains(t, out, "policy drop;")
	assert.NotContains(t, out, "tcp dport")
	assert.NotContains(t, out, "udp dport")
	assert.NotContains(t, out, "ct state")
	assert.NotContains(t, out, "saddr")
}

func TestNATRedirect(t *testing.T) {
	out := NATRedirect("192.168.1.10", "10.0.0.20", 8080)

	assert.Contains(t, out, "ip daddr 192.168.1.10 tcp dport 8080 dnat to 10.0.0.20")
	assert.Contains(t, out, "masquerade")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.nft")
	ruleset := Ruleset(Config{TCPPorts: []int{22}})

	require.NoError(t, WriteFile(path, ruleset))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ruleset, string(data))
}

type scriptedRunner struct {
	code int
	out  string
	err  error

	gotName string
	gotArgs []string
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) (int, error) {
	r.gotName, r.gotArgs = name, args
	return r.code, r.err
}

func (r *scriptedRunner) Capture(_ context.Context, name string, args ...string) (int, string, error) {
	r.gotName, r.gotArgs = name, args
	return r.code, r.out, r.err
}

func TestApply(t *testing.T) {
	ok := &scriptedRunner{}
	require.NoError(t, Apply(context.Background(), ok, "/etc/nftables.conf"))
	assert.Equal(t, "nft", ok.gotName)
	assert.Equal(t, []string{"-f", "/etc/nftables.conf"}, ok.gotArgs)

	rejected := &scriptedRunner{code: 1, out: "Error: syntax error"}
	err := Apply(context.Background(), rejected, "/etc/nftables.conf")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "syntax error"))
}
