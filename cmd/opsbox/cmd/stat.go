package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/sysinfo"
)

var statWindow time.Duration

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Print current CPU utilisation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		usage, err := sysinfo.CPUUsage(cmd.Context(), statWindow)
		if err != nil {
			return err
		}
		fmt.Printf("%.5f%%\n", usage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
	statCmd.Flags().DurationVar(&statWindow, "window", time.Second, "sampling window")
}
