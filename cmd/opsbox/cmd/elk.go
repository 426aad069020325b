package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/elk"
	"github.com/opsbox/opsbox/internal/execx"
)

var (
	elkHost      string
	elkConfigDir string
	elkEnable    bool
)

var elkCmd = &cobra.Command{
	Use:   "elk",
	Short: "Bootstrap log shipping to an ELK collector",
	Long: "Render filebeat and auditbeat configurations pointed at a collector\n" +
		"host, and optionally enable the shipper services.",
	RunE: runElk,
}

func init() {
	rootCmd.AddCommand(elkCmd)
	elkCmd.Flags().StringVarP(&elkHost, "host", "H", "", "collector host address (required)")
	elkCmd.Flags().StringVarP(&elkConfigDir, "config-dir", "d", "/etc/opsbox/elk",
		"directory to write shipper configs into")
	elkCmd.Flags().BoolVar(&elkEnable, "enable", false,
		"enable the shipper services after writing configs")
	_ = elkCmd.MarkFlagRequired("host")
}

func runElk(cmd *cobra.Command, _ []string) error {
	written, err := elk.RenderConfigs(elkConfigDir, elk.Pipeline{Host: elkHost})
	if err != nil {
		return err
	}
	for _, path := range written {
		logger.Info("wrote shipper config", "path", path)
	}

	if !elkEnable {
		fmt.Println("Configs written. Re-run with --enable to start the shippers.")
		return nil
	}

	errs := elk.EnableShippers(cmd.Context(), execx.NewRunner(logger.Logger))
	for _, err := range errs {
		logger.Warn("shipper not enabled", "error", err)
	}
	if len(errs) == len(elk.ShipperNames) {
		return fmt.Errorf("no shipper could be enabled")
	}
	return nil
}
