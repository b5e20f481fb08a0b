package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/qbformat/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the paste-and-convert HTTP API",
	Long: `Serve starts the HTTP API used by the paste-and-convert UI:
POST /api/convert, the run history under /api/history, /api/taxonomies,
/healthz and /metrics. History lives in memory only.

Examples:
  qbformat serve
  qbformat serve --addr :9090 --mode ict`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = flagAddr
		}

		srv := server.New(server.Options{
			Mode:         cfg.Taxonomy(),
			AllowOrigins: cfg.Server.AllowOrigins,
			HistoryLimit: cfg.Server.HistoryLimit,
			PDFFontPath:  cfg.PDF.FontPath,
			Logger:       logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
}
