package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/web"
)

var (
	serveHost string
	servePort int
	serveRoot string
	serveCORS bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve a directory over HTTP",
	Long:    "Export a directory tree over HTTP, with every request logged.",
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen address (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
	serveCmd.Flags().StringVarP(&serveRoot, "root", "r", "", "directory to serve (default from config)")
	serveCmd.Flags().BoolVar(&serveCORS, "cors", false, "allow cross-origin GET requests")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := web.DefaultConfig()
	cfg.Host = appConfig.Serve.Host
	cfg.Port = appConfig.Serve.Port
	cfg.Root = appConfig.Serve.Root
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveRoot != "" {
		cfg.Root = serveRoot
	}
	cfg.EnableCORS = serveCORS

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.New(cfg, logger.Logger).Run(ctx)
}
