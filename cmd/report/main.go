// Report prints the monthly competitor-intel summary and optionally
// posts it to the monitored channel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"CompetitionBot/internal/app"
	"CompetitionBot/internal/config"
	"CompetitionBot/internal/infrastructure/slackbot"
	"CompetitionBot/internal/logging"
	"CompetitionBot/internal/report"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	month := flag.String("month", "", "report month as YYYY-MM (default: previous month)")
	post := flag.Bool("post", false, "post the report to the channel")
	flag.Parse()

	year, m := report.PreviousMonth(time.Now())
	if *month != "" {
		t, err := time.Parse("2006-01", *month)
		if err != nil {
			logger.Error("bad -month value", "value", *month, "error", err)
			os.Exit(1)
		}
		year, m = t.Year(), t.Month()
	}

	repo, db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	text, err := report.NewBuilder(repo).Monthly(ctx, year, m)
	if err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(text)

	if !*post {
		return
	}

	client := slackbot.NewClient(cfg.Slack.BotToken, "", logger.With("component", "slack"))
	channelID, err := client.ChannelIDByName(ctx, cfg.Slack.Channel)
	if err != nil {
		logger.Error("channel lookup failed", "error", err)
		os.Exit(1)
	}
	if err := client.Reply(ctx, channelID, "", text); err != nil {
		logger.Error("posting report failed", "error", err)
		os.Exit(1)
	}
	logger.Info("report posted", "channel", cfg.Slack.Channel)
}
