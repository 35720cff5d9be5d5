package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"livestock-records/internal/platform/metrics"
	"livestock-records/internal/router"
	"livestock-records/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Arranca la API HTTP y el resumen diario de vacunas",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, baseLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := router.OpenStorage(ctx, cfg, baseLogger.Named("storage"))
	if err != nil {
		baseLogger.Error("failed to open record source", zap.Error(err))
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			baseLogger.Error("failed to close record source", zap.Error(err))
		}
	}()

	loc, err := cfg.Digest.Location()
	if err != nil {
		return err
	}

	m := metrics.New()
	opts := router.Options{Storage: store, Logger: baseLogger, Metrics: m, Location: loc}
	svcs := router.NewServices(opts)

	if cfg.Digest.Enabled {
		sched := scheduler.NewScheduler(cfg.Digest.Cron, loc, svcs.Vaccines, m, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Handler(svcs, opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			baseLogger.Error("http server crashed", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		baseLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
