package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/shop0/internal/server"
	"github.com/garrettladley/shop0/internal/xslog"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var flags webhookFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Register webhooks and serve their deliveries",
		Long:  "Registers each --topic for the shop, then listens on $PORT and verifies and dispatches incoming deliveries until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, closeLog, err := readConfig()
			if err != nil {
				return err
			}
			defer closeLog()

			registry := newRegistry(cfg, logger)
			results, err := registry.RegisterAll(ctx, flags.options(logDelivery))
			if err != nil {
				return fmt.Errorf("failed to register webhooks: %w", err)
			}
			for i, result := range results {
				if !result.Success {
					logger.WarnContext(ctx, "webhook registration rejected", xslog.Topic(flags.topics[i]))
				}
			}

			httpServer := server.New(":"+cfg.Port, registry, logger)

			errCh := make(chan error, 1)
			go func() {
				logger.InfoContext(ctx, "starting server",
					xslog.Version(),
					slog.String("port", cfg.Port),
					slog.Any("topics", registry.Topics()))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.InfoContext(ctx, "shutdown signal received, shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}

			logger.InfoContext(shutdownCtx, "server stopped")
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
