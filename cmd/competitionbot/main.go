package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CompetitionBot/internal/app"
	"CompetitionBot/internal/config"
	"CompetitionBot/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	logger.Info("CompetitionBot starting", "channel", cfg.Slack.Channel)
	if err := application.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
