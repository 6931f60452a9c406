package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notes-api/handlers"
	"notes-api/health"
	"notes-api/middleware"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, logger, store, err := setup(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		router := handlers.NewRouter(handlers.RouterConfig{
			Store:         store,
			Probe:         health.NewProbe(store, logger.With().Str("component", "health").Logger()),
			Classifier:    middleware.NewClassifier(cfg.NotFoundMessages(), cfg.IsProduction()),
			Logger:        logger,
			JWTSecret:     []byte(cfg.JWTSecret),
			RequireAuth:   cfg.RequireAuth,
			HashPasswords: cfg.HashPasswords,
		})

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info().Str("addr", srv.Addr).Str("driver", store.Driver()).Msg("server running")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
