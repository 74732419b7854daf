// Backfill imports historical channel messages through the capture
// pipeline. Run once per channel; duplicates are skipped by the dedup
// gate, so re-runs are safe.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CompetitionBot/internal/app"
	"CompetitionBot/internal/config"
	"CompetitionBot/internal/infrastructure/slackbot"
	"CompetitionBot/internal/logging"
	"CompetitionBot/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	start := flag.String("since", cfg.Backfill.StartDate, "import messages since this date (YYYY-MM-DD)")
	flag.Parse()

	oldest, err := time.Parse("2006-01-02", *start)
	if err != nil {
		logger.Error("bad -since date", "value", *start, "error", err)
		os.Exit(1)
	}

	repo, db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	client := slackbot.NewClient(cfg.Slack.BotToken, "", logger.With("component", "slack"))
	source := slackbot.NewHistorySource(client, cfg.Slack.Channel, cfg.Backfill.PageDelayDuration(), logger.With("component", "history"))

	backfill := usecase.NewBackfill(app.BuildPipeline(cfg, repo, logger), usecase.BackfillDeps{
		Source: source,
		Pause:  cfg.Backfill.MessageDelayDuration(),
		Logger: logger.With("component", "backfill"),
	})

	logger.Info("backfill starting", "channel", cfg.Slack.Channel, "since", *start)
	stats, err := backfill.Run(ctx, oldest)
	if err != nil {
		logger.Error("backfill failed", "error", err)
		os.Exit(1)
	}

	logger.Info("backfill complete",
		"messages", stats.Messages,
		"captured", stats.Captured,
		"empty", stats.Empty)
}
