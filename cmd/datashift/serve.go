// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/datashift/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversion and samples over HTTP",
	Long: `Serve starts an HTTP server exposing POST /api/v1/convert,
GET /api/v1/sample, GET /api/v1/formats and GET /healthz. It shuts down
gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Serve.Addr = addr
		}
		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}
