package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/check"
	"github.com/opsbox/opsbox/internal/config"
	"github.com/opsbox/opsbox/internal/diagnostics"
	"github.com/opsbox/opsbox/internal/execx"
)

var (
	daemonInterval      time.Duration
	daemonOnChangeOnly  bool
	daemonLogFile       string
	daemonLogsAddr      string
	daemonHistoryDB     string
	daemonSelectionFile string
)

var checkDaemonCmd = &cobra.Command{
	Use:     "check-daemon <names...>",
	Aliases: []string{"cd"},
	Short:   "Run service diagnostics on an interval",
	Long: "Run the named checks repeatedly, tracking status transitions between\n" +
		"cycles. The process runs until interrupted; its exit code reflects only\n" +
		"whether startup validation succeeded.\n\n" +
		"Available checks:\n" + catalogHelp(),
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckDaemon,
}

func init() {
	rootCmd.AddCommand(checkDaemonCmd)
	checkDaemonCmd.Flags().DurationVarP(&daemonInterval, "interval", "i", 90*time.Second,
		"wait duration between check cycles")
	checkDaemonCmd.Flags().BoolVar(&daemonOnChangeOnly, "on-change-only", false,
		"emit a report only when some check's status changed since the previous cycle")
	checkDaemonCmd.Flags().StringVar(&daemonLogFile, "log-file", "",
		"append NDJSON reports to this file")
	checkDaemonCmd.Flags().StringVar(&daemonLogsAddr, "logs-addr", "",
		"ship NDJSON reports to this TCP address")
	checkDaemonCmd.Flags().StringVar(&daemonHistoryDB, "history-db", "",
		"record reports in this sqlite database")
	checkDaemonCmd.Flags().StringVar(&daemonSelectionFile, "selection-file", "",
		"watch this YAML file and swap the check selection when it changes")
	checkDaemonCmd.Flags().BoolVarP(&showSuccessfulSteps, "show-successful-steps", "s", false,
		"show the results of successful steps")
	checkDaemonCmd.Flags().BoolVarP(&showSkippedSteps, "show-skipped-steps", "n", false,
		"show steps that were skipped and why")
}

func runCheckDaemon(cmd *cobra.Command, args []string) error {
	engine := check.NewEngine(diagnostics.Catalog(), execx.NewRunner(logger.Logger), logger.Logger)

	emitter, cleanup, err := buildEmitters()
	if err != nil {
		return err
	}
	defer cleanup()

	daemon := check.NewDaemon(engine, emitter, check.DaemonConfig{
		Names:        args,
		Interval:     daemonInterval,
		OnChangeOnly: daemonOnChangeOnly,
	}, logger.Logger)

	if daemonSelectionFile != "" {
		closeWatch, err := config.WatchDaemonSelection(daemonSelectionFile, logger.Logger,
			func(sel config.DaemonSelection) error {
				return daemon.SetNames(sel.Checks)
			})
		if err != nil {
			return err
		}
		defer closeWatch()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx)
}

// buildEmitters assembles the configured report sinks: always the terminal
// renderer, plus optional NDJSON file, TCP collector, and sqlite history.
func buildEmitters() (check.Emitter, func(), error) {
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	emitters := check.MultiEmitter{
		check.EmitterFunc(func(report *check.Report) error {
			check.Render(os.Stdout, report, check.RenderOptions{
				ShowPassed:  showSuccessfulSteps,
				ShowSkipped: showSkippedSteps,
			})
			return nil
		}),
	}

	if daemonLogFile != "" {
		fileEmitter, closer, err := check.FileEmitter(daemonLogFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { closer.Close() })
		emitters = append(emitters, fileEmitter)
	}

	if daemonLogsAddr != "" {
		emitters = append(emitters, check.NetEmitter(daemonLogsAddr))
	}

	if daemonHistoryDB != "" {
		history, err := check.OpenHistory(daemonHistoryDB)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("opening history: %w", err)
		}
		closers = append(closers, func() { history.Close() })
		emitters = append(emitters, history)
	}

	return emitters, cleanup, nil
}
