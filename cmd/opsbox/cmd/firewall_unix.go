//go:build unix

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/execx"
	"github.com/opsbox/opsbox/internal/firewall"
)

var (
	fwOutputFile       string
	fwELKHost          string
	fwAllowEstablished bool
	fwApply            bool

	fwNATFrom string
	fwNATTo   string
	fwNATPort int
)

var firewallCmd = &cobra.Command{
	Use:     "firewall",
	Aliases: []string{"fw"},
	Short:   "Generate and apply nftables rulesets",
}

var firewallQuickSetupCmd = &cobra.Command{
	Use:     "quick-setup",
	Aliases: []string{"qs"},
	Short:   "Build a ruleset from the ports currently listening",
	RunE:    runFirewallQuickSetup,
}

var firewallNATRedirectCmd = &cobra.Command{
	Use:     "nat-redirect",
	Aliases: []string{"nr"},
	Short:   "Build a NAT redirect ruleset",
	RunE:    runFirewallNATRedirect,
}

func init() {
	rootCmd.AddCommand(firewallCmd)
	firewallCmd.AddCommand(firewallQuickSetupCmd)
	firewallCmd.AddCommand(firewallNATRedirectCmd)

	firewallCmd.PersistentFlags().StringVarP(&fwOutputFile, "output-file", "f", "",
		"where to write the ruleset (default: stdout)")
	firewallQuickSetupCmd.Flags().StringVarP(&fwELKHost, "elk-host", "e", "",
		"allow log shipping and dashboard access to this collector host")
	firewallQuickSetupCmd.Flags().BoolVarP(&fwAllowEstablished, "allow-established", "E", false,
		"accept packets for already-established connections")
	firewallQuickSetupCmd.Flags().BoolVar(&fwApply, "apply", false,
		"load the ruleset with nft after writing it (requires --output-file)")

	firewallNATRedirectCmd.Flags().StringVar(&fwNATFrom, "from", "", "address traffic arrives for (required)")
	firewallNATRedirectCmd.Flags().StringVar(&fwNATTo, "to", "", "address to redirect to (required)")
	firewallNATRedirectCmd.Flags().IntVar(&fwNATPort, "port", 80, "TCP port to redirect")
	_ = firewallNATRedirectCmd.MarkFlagRequired("from")
	_ = firewallNATRedirectCmd.MarkFlagRequired("to")
}

func runFirewallQuickSetup(cmd *cobra.Command, _ []string) error {
	cfg, err := firewall.FromListeningPorts(cmd.Context())
	if err != nil {
		return err
	}
	cfg.ELKHost = fwELKHost
	cfg.AllowEstablished = fwAllowEstablished

	ruleset := firewall.Ruleset(cfg)
	if fwOutputFile == "" || fwOutputFile == "-" {
		if fwApply {
			return fmt.Errorf("--apply needs --output-file")
		}
		fmt.Fprint(os.Stdout, ruleset)
		return nil
	}

	if err := firewall.WriteFile(fwOutputFile, ruleset); err != nil {
		return err
	}
	logger.Info("wrote ruleset", "path", fwOutputFile,
		"tcp_ports", len(cfg.TCPPorts), "udp_ports", len(cfg.UDPPorts))

	if fwApply {
		return firewall.Apply(cmd.Context(), execx.NewRunner(logger.Logger), fwOutputFile)
	}
	return nil
}

func runFirewallNATRedirect(*cobra.Command, []string) error {
	ruleset := firewall.NATRedirect(fwNATFrom, fwNATTo, fwNATPort)
	if fwOutputFile == "" || fwOutputFile == "-" {
		fmt.Fprint(os.Stdout, ruleset)
		return nil
	}
	return firewall.WriteFile(fwOutputFile, ruleset)
}
