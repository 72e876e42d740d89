package main

import (
	"time"

	"github.com/aretw0/lotka/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [story]",
	Short: "Start the HTTP reading server",
	Long: `Serves reading sessions as a JSON API. Each POST /sessions starts an
independent session; /metrics exposes Prometheus counters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.Serve(sigCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().Duration("session-ttl", 30*time.Minute, "Evict sessions idle for longer (0 keeps them)")
}
