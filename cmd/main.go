// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
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

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/config"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/digest"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/handler"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/metrics"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/repository"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// ── 1. Configuration and logging ─────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	digester, err := digest.New(cfg.Digest, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	catalog, err := repository.NewInventoryCatalog(repository.DefaultHotels())
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	accounts := repository.NewAccountRegistry()
	m := metrics.New()

	engine := service.NewBookingEngine(accounts, catalog, digester,
		service.WithLogger(logger),
		service.WithMetrics(m),
	)
	bookingHandler := handler.NewBookingHandler(engine)
	logger.Info("catalog ready", "hotels", catalog.Size(), "digest", cfg.Digest)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(bookingHandler, logger, m.Handler()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Block until SIGINT, SIGTERM or a listener failure.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
