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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billpay/internal/auth"
	"github.com/mmynk/billpay/internal/config"
	"github.com/mmynk/billpay/internal/server"
	"github.com/mmynk/billpay/internal/storage/sqlite"
	"github.com/mmynk/billpay/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if cfg.DevSecret() {
		slog.Warn("JWT_SECRET not set, using the built-in development secret")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Seed {
		seeded, err := store.Seed(ctx, auth.HashPassword, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		if seeded {
			slog.Info("Database seeded with demo data")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(store,
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		cfg.Admin,
		server.WithLogger(slog.Default()),
		server.WithRegistry(reg),
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(srv.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
