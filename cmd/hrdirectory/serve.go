package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/hr-directory/internal/config"
	"github.com/example/hr-directory/internal/logging"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Seed an in-memory store and serve it over HTTP until interrupted.

Configuration is read from HR_* environment variables; --port overrides
HR_HTTP_PORT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				if port <= 0 || port > 65535 {
					return fmt.Errorf("invalid --port %d", port)
				}
				cfg.HTTPPort = port
			}

			logger := logging.New(cmd.OutOrStdout(), cfg.LogLevel, string(cfg.LogFormat))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
			if err != nil {
				return fmt.Errorf("listen on port %d: %w", cfg.HTTPPort, err)
			}
			return serve(ctx, cfg, logger, listener)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides HR_HTTP_PORT)")

	return cmd
}

// serve runs the API on listener until ctx is canceled, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, listener net.Listener) error {
	instance, err := newApp(ctx, cfg, logger, time.Now)
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer func() {
		if cerr := instance.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	server := &http.Server{
		Handler:           instance.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hr directory listening", "addr", listener.Addr().String())
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}
