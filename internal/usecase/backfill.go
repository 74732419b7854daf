package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"CompetitionBot/internal/ports"
)

// BackfillDeps wires the history source into the shared pipeline.
type BackfillDeps struct {
	Source ports.MessageSource
	// Pause between messages; the upstream chat API is rate limited and
	// the sequential pass is intentional.
	Pause  time.Duration
	Logger *slog.Logger
}

// Backfill imports historical channel messages through the same pipeline
// the live listener uses.
type Backfill struct {
	source   ports.MessageSource
	pipeline *Pipeline
	pause    time.Duration
	logger   *slog.Logger
}

// BackfillStats summarizes one import pass.
type BackfillStats struct {
	Messages int // messages examined
	Captured int // records persisted
	Empty    int // messages that produced nothing (no new URLs)
}

// NewBackfill constructs the import driver.
func NewBackfill(pipeline *Pipeline, deps BackfillDeps) *Backfill {
	return &Backfill{
		source:   deps.Source,
		pipeline: pipeline,
		pause:    deps.Pause,
		logger:   deps.Logger,
	}
}

// Run fetches every message since oldest and feeds them through the
// pipeline one at a time, oldest first.
func (b *Backfill) Run(ctx context.Context, oldest time.Time) (BackfillStats, error) {
	var stats BackfillStats

	messages, err := b.source.Fetch(ctx, oldest)
	if err != nil {
		return stats, fmt.Errorf("fetch history: %w", err)
	}
	b.info("history fetched", "messages", len(messages), "oldest", oldest.Format("2006-01-02"))

	for i, msg := range messages {
		stats.Messages++
		captures := b.pipeline.ProcessMessage(ctx, msg)
		if len(captures) == 0 {
			stats.Empty++
		}
		stats.Captured += len(captures)

		if (i+1)%10 == 0 {
			b.info("progress", "done", i+1, "total", len(messages), "captured", stats.Captured)
		}

		if b.pause > 0 && i < len(messages)-1 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(b.pause):
			}
		}
	}

	return stats, nil
}

func (b *Backfill) info(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}
