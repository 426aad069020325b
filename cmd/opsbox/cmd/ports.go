package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/sysinfo"
)

var portsCmd = &cobra.Command{
	Use:     "ports",
	Aliases: []string{"p"},
	Short:   "List listening sockets and their owning processes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := sysinfo.ListeningPorts(cmd.Context())
		if err != nil {
			return err
		}
		printPorts(ports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
