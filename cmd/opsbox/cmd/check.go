package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/check"
	"github.com/opsbox/opsbox/internal/diagnostics"
	"github.com/opsbox/opsbox/internal/execx"
)

var (
	showSuccessfulSteps bool
	showSkippedSteps    bool
)

var checkCmd = &cobra.Command{
	Use:     "check <names...>",
	Aliases: []string{"c"},
	Short:   "Run service diagnostics once",
	Long: "Run the named checks once and report every step's outcome.\n\n" +
		"Available checks:\n" + catalogHelp(),
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&showSuccessfulSteps, "show-successful-steps", "s", false,
		"show the results of successful steps")
	checkCmd.Flags().BoolVarP(&showSkippedSteps, "show-skipped-steps", "n", false,
		"show steps that were skipped and why")
}

func runCheck(cmd *cobra.Command, args []string) error {
	engine := check.NewEngine(diagnostics.Catalog(), execx.NewRunner(logger.Logger), logger.Logger)

	report, err := engine.Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	check.Render(os.Stdout, report, check.RenderOptions{
		ShowPassed:  showSuccessfulSteps,
		ShowSkipped: showSkippedSteps,
	})

	if report.Status() == check.StatusFail {
		return fmt.Errorf("one or more checks failed")
	}
	return nil
}

// catalogHelp lists the troubleshooter catalog for help output.
func catalogHelp() string {
	catalog := diagnostics.Catalog()
	var b strings.Builder
	for _, name := range catalog.Names() {
		fmt.Fprintf(&b, "  %-6s %s\n", name, catalog.Describe(name))
	}
	return b.String()
}
