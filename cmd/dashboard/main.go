// Dashboard serves the stored intel over HTTP: search, stats, manual
// corrections, and CSV export.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CompetitionBot/internal/app"
	"CompetitionBot/internal/config"
	"CompetitionBot/internal/dashboard"
	"CompetitionBot/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	repo, db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	server := dashboard.New(repo, app.BuildClassifier(cfg).Labels(), logger.With("component", "dashboard"))
	httpServer := &http.Server{
		Addr:              cfg.Dashboard.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("dashboard listening", "addr", cfg.Dashboard.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
}
