package check

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Render styles
var (
	checkNameStyle = lipgloss.NewStyle().
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")) // Green

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")). // Red
			Bold(true)

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")). // Muted gray
			Italic(true)

	remedyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")). // Amber
			PaddingLeft(4)
)

// RenderOptions controls which outcomes the renderer prints. Failures are
// always shown.
type RenderOptions struct {
	ShowPassed  bool
	ShowSkipped bool
}

// Render writes a human-readable report. Output order follows the report's
// entry order, which follows selection order, so a rendered report is
// reproducible for a given host state.
func Render(w io.Writer, report *Report, opts RenderOptions) {
	for _, entry := range report.Entries {
		label := skipStyle.Render("skip")
		switch entry.Status() {
		case StatusPass:
			label = passStyle.Render("pass")
		case StatusFail:
			label = failStyle.Render("FAIL")
		}
		fmt.Fprintln(w, checkNameStyle.Render(entry.Name), label)

		for _, o := range entry.Outcomes {
			switch o.Status {
			case StatusPass:
				if !opts.ShowPassed {
					continue
				}
				fmt.Fprintf(w, "  %s %s: %s\n", passStyle.Render("✓"), o.Step, o.Diagnosis)
			case StatusSkip:
				if !opts.ShowSkipped {
					continue
				}
				fmt.Fprintf(w, "  %s %s: %s\n", skipStyle.Render("○"), o.Step, o.Reason)
			case StatusFail:
				fmt.Fprintf(w, "  %s %s: %s\n", failStyle.Render("✗"), o.Step, o.Diagnosis)
				if o.Remediation != "" {
					fmt.Fprintln(w, remedyStyle.Render("fix: "+o.Remediation))
				}
			}
		}
	}
}
