package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/event-relay/internal/config"
	"github.com/telhawk-systems/event-relay/internal/forward"
	"github.com/telhawk-systems/event-relay/internal/logging"
	"github.com/telhawk-systems/event-relay/internal/relay"
	"github.com/telhawk-systems/event-relay/internal/server"
	"github.com/telhawk-systems/event-relay/internal/source"
	"github.com/telhawk-systems/event-relay/pkg/event"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay sidecar",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("event-relay"))
	logging.SetDefault(logger)

	mask, unknown := event.ParseMask(cfg.General.Events)
	for _, tok := range unknown {
		slog.Warn("unknown event type in configuration", slog.String("token", tok))
	}

	rly := relay.New(cfg.General, cfg.Delivery, logger)
	if err := rly.Init(); err != nil {
		// Disabled or misconfigured: the host proceeds without this handler.
		return fmt.Errorf("event relay not started: %w", err)
	}

	slog.Info("event relay configured",
		slog.String("backend", cfg.General.Backend),
		slog.String("events", mask.String()),
		slog.Int("port", cfg.Server.Port),
	)

	fwd := forward.New(mask, rly, logger)
	handler := server.NewCollectorHandler(fwd, rly, logger)
	router := server.NewRouter(handler)

	var natsSource *source.NATS
	if cfg.NATS.Enabled {
		natsSource, err = source.NewNATS(cfg.NATS, fwd, logger)
		if err != nil {
			rly.Destroy()
			return fmt.Errorf("nats source: %w", err)
		}
		if err := natsSource.Start(); err != nil {
			natsSource.Close()
			rly.Destroy()
			return fmt.Errorf("nats source: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("collector listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", logging.Error(err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", logging.Error(err))
	}
	if natsSource != nil {
		natsSource.Close()
	}
	rly.Destroy()
	slog.Info("stopped")
	return nil
}
