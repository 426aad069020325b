//go:build windows

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/execx"
)

var enumWindowsCmd = &cobra.Command{
	Use:     "enum-windows",
	Aliases: []string{"ew"},
	Short:   "Enumerate Windows services and hotfixes",
	RunE:    runEnumWindows,
}

func init() {
	rootCmd.AddCommand(enumWindowsCmd)
}

func runEnumWindows(cmd *cobra.Command, _ []string) error {
	runner := execx.NewRunner(logger.Logger)

	code, out, err := runner.Capture(cmd.Context(), "sc", "query", "state=", "all")
	if err != nil {
		return fmt.Errorf("launching sc: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("sc query failed (status %d)", code)
	}
	fmt.Println("Services:")
	fmt.Println(out)

	code, out, err = runner.Capture(cmd.Context(), "wmic", "qfe", "list", "brief")
	if err != nil {
		return fmt.Errorf("launching wmic: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("wmic qfe failed (status %d)", code)
	}
	fmt.Println("Hotfixes:")
	fmt.Println(strings.TrimSpace(out))
	return nil
}
