// Package cmd assembles the opsbox command tree. Platform-specific commands
// are registered from build-tagged files, so a command that does not apply
// to the current platform is simply absent from the registry and invoking
// it fails exactly like an unknown name.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opsbox/opsbox/internal/config"
	"github.com/opsbox/opsbox/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	appConfig *config.Config
	logger    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "opsbox",
	Short: "Single-binary host administration toolkit",
	Long: `opsbox bundles the tools an operator needs on an unfamiliar host:
service diagnostics (one-shot or as a daemon), system enumeration,
firewall setup, backups, log-pipeline bootstrap and a file server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initConfig()
	},
}

// Execute runs the dispatcher: resolve argv to a handler, run it, and map
// the result to an exit code in main.
func Execute() error {
	mustBeUniquelyNamed(rootCmd)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// SetVersion injects build-time version info.
func SetVersion(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./opsbox.yaml, /etc/opsbox/opsbox.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format (auto, text, json)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() error {
	loader := config.NewLoader(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	return nil
}

// mustBeUniquelyNamed panics when two registered commands share a name or
// alias. Registration happens in init functions, so a collision is a
// programming error caught on the first invocation of any command, never a
// runtime condition an operator can hit selectively.
func mustBeUniquelyNamed(root *cobra.Command) {
	seen := make(map[string]string)
	claim := func(token, owner string) {
		if prev, dup := seen[token]; dup {
			panic(fmt.Sprintf("command token %q registered by both %s and %s", token, prev, owner))
		}
		seen[token] = owner
	}
	for _, c := range root.Commands() {
		claim(c.Name(), c.Name())
		for _, alias := range c.Aliases {
			claim(alias, c.Name())
		}
	}
}
