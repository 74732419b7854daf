package usecase

import (
	"context"
	"log/slog"
	"time"

	"CompetitionBot/internal/classify"
	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/extract"
	"CompetitionBot/internal/ports"
	"CompetitionBot/internal/resolve"
)

// DefaultSummaryLimit bounds the stored copy of the message text; the
// summary is a lossy field.
const DefaultSummaryLimit = 2000

// PipelineDeps wires the classification stages and the store into the
// orchestration pipeline.
type PipelineDeps struct {
	Repository   ports.IntelRepository
	Resolver     *resolve.Resolver
	Classifier   *classify.Classifier
	LinkFor      func(channelID, ts string) string
	SummaryLimit int
	Logger       *slog.Logger
}

// Pipeline turns one inbound message into zero or more persisted intel
// records: extract links, skip known URLs, resolve the company, classify
// the update, persist. Both the live listener and the historical importer
// drive this same path.
type Pipeline struct {
	repository   ports.IntelRepository
	resolver     *resolve.Resolver
	classifier   *classify.Classifier
	linkFor      func(channelID, ts string) string
	summaryLimit int
	logger       *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	limit := deps.SummaryLimit
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	linkFor := deps.LinkFor
	if linkFor == nil {
		linkFor = func(string, string) string { return "" }
	}
	return &Pipeline{
		repository:   deps.Repository,
		resolver:     deps.Resolver,
		classifier:   deps.Classifier,
		linkFor:      linkFor,
		summaryLimit: limit,
		logger:       deps.Logger,
	}
}

// ProcessMessage runs the full pipeline for every link in the message and
// returns what was actually persisted in this pass. URLs are processed
// independently: a store failure on one is logged and skipped, never
// aborting its siblings. No outcome here is fatal; the worst case is
// "this URL was not recorded, try again later".
func (p *Pipeline) ProcessMessage(ctx context.Context, msg domain.Message) []domain.Capture {
	urls := extract.URLs(msg.Text)
	if len(urls) == 0 {
		return nil
	}

	var captured []domain.Capture
	for _, u := range urls {
		exists, err := p.repository.ExistsURL(ctx, u)
		if err != nil {
			// Fail open: a missed duplicate check beats a lost update.
			p.warn("dedup lookup failed, treating as new", "url", u, "error", err)
			exists = false
		}
		if exists {
			continue
		}

		company, provenance := p.resolver.Company(u, msg.Text)
		category := p.classifier.Classify(msg.Text)
		rec := p.assemble(msg, u, company, category)

		if _, err := p.repository.Insert(ctx, rec); err != nil {
			p.warn("insert failed, url skipped", "url", u, "error", err)
			continue
		}

		captured = append(captured, domain.Capture{
			Competitor: company.Display(),
			Category:   category,
			Provenance: provenance,
		})
	}

	return captured
}

func (p *Pipeline) assemble(msg domain.Message, url string, company domain.Company, category string) domain.IntelRecord {
	when := msg.When
	if when.IsZero() {
		when = time.Now()
	}
	return domain.IntelRecord{
		Competitor: company.Display(),
		URL:        url,
		Category:   category,
		Summary:    truncate(msg.Text, p.summaryLimit),
		SharedBy:   msg.Author,
		DateAdded:  when,
		SlackLink:  p.linkFor(msg.ChannelID, msg.Timestamp),
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
