// Package app wires configuration into the concrete adapters. Every
// binary (listener, backfill, report, dashboard) builds its pieces from
// here so they all share one directory, one rule set, and one store.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"CompetitionBot/internal/classify"
	"CompetitionBot/internal/config"
	"CompetitionBot/internal/directory"
	"CompetitionBot/internal/infrastructure/slackbot"
	"CompetitionBot/internal/infrastructure/storage"
	"CompetitionBot/internal/resolve"
	"CompetitionBot/internal/usecase"
)

// BuildDirectory returns the configured company directory, or the
// built-in tables when the config carries none.
func BuildDirectory(cfg config.Config) *directory.Directory {
	if len(cfg.Directory.Companies) == 0 {
		return directory.Default()
	}
	entries := make([]directory.Entry, 0, len(cfg.Directory.Companies))
	for _, c := range cfg.Directory.Companies {
		entries = append(entries, directory.Entry{Domain: c.Domain, Company: c.Name})
	}
	return directory.New(entries, cfg.Directory.Sources)
}

// BuildClassifier returns the configured category rules, or the built-in
// ordered set.
func BuildClassifier(cfg config.Config) *classify.Classifier {
	if len(cfg.Categories) == 0 {
		return classify.Default()
	}
	rules := make([]classify.Rule, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		rules = append(rules, classify.Rule{Label: c.Label, Phrases: c.Phrases})
	}
	return classify.New(rules)
}

// OpenStore connects to Postgres and wraps it in the intel repository.
// The caller owns closing the returned DB handle.
func OpenStore(ctx context.Context, cfg config.Config) (*storage.PostgresRepository, *sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.StoreTimeout())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	return storage.NewPostgresRepository(db, cfg.Database.StoreTimeout()), db, nil
}

// BuildPipeline assembles the classification pipeline on top of a store.
func BuildPipeline(cfg config.Config, repo *storage.PostgresRepository, logger *slog.Logger) *usecase.Pipeline {
	dir := BuildDirectory(cfg)
	return usecase.NewPipeline(usecase.PipelineDeps{
		Repository:   repo,
		Resolver:     resolve.New(dir),
		Classifier:   BuildClassifier(cfg),
		LinkFor:      slackbot.MessageLink,
		SummaryLimit: cfg.Pipeline.SummaryLimit,
		Logger:       logger.With("component", "pipeline"),
	})
}

// Application is the live bot: socket-mode listener plus the pipeline.
type Application struct {
	listener *slackbot.Listener
	db       *sqlx.DB
}

// New builds a runnable live-bot instance.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Application, error) {
	repo, db, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline := BuildPipeline(cfg, repo, logger)
	client := slackbot.NewClient(cfg.Slack.BotToken, cfg.Slack.AppToken, logger.With("component", "slack"))
	listener := slackbot.NewListener(client, cfg.Slack.Channel, pipeline, logger.With("component", "listener"))

	return &Application{listener: listener, db: db}, nil
}

// Run blocks on the event loop until the context is canceled.
func (a *Application) Run(ctx context.Context) error {
	return a.listener.Run(ctx)
}

// Close releases the database handle.
func (a *Application) Close() error {
	return a.db.Close()
}
