// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/eveitems/internal/server"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser over HTTP",
	Long:  `Serve the parser & type lookups as a JSON API until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return
		}
		parser, release, err := newParser(cfg)
		if err != nil {
			return
		}
		defer release()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg.Server, parser)
		errChan := make(chan error, 1)
		go func() { errChan <- srv.ListenAndServe() }()

		select {
		case err = <-errChan:
			return
		case <-ctx.Done():
			logger.Info("shutdown signal received, stopping server")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}
