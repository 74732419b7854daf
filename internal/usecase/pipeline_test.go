package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"CompetitionBot/internal/classify"
	"CompetitionBot/internal/directory"
	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/resolve"
)

type fakeRepo struct {
	records   []domain.IntelRecord
	existsErr error
	insertErr map[string]error
	nextID    int64
}

func (f *fakeRepo) ExistsURL(_ context.Context, url string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, r := range f.records {
		if r.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Insert(_ context.Context, rec domain.IntelRecord) (int64, error) {
	if err := f.insertErr[rec.URL]; err != nil {
		return 0, err
	}
	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, rec)
	return rec.ID, nil
}

func newTestPipeline(repo *fakeRepo, summaryLimit int) *Pipeline {
	return NewPipeline(PipelineDeps{
		Repository:   repo,
		Resolver:     resolve.New(directory.Default()),
		Classifier:   classify.Default(),
		LinkFor:      func(channel, ts string) string { return "https://slack.com/archives/" + channel + "/p" + strings.ReplaceAll(ts, ".", "") },
		SummaryLimit: summaryLimit,
	})
}

func TestProcessMessageAssemblesRecord(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	p := newTestPipeline(repo, 0)

	when := time.Date(2025, time.June, 3, 15, 4, 5, 0, time.UTC)
	msg := domain.Message{
		Text:      "Stripe is launching a new billing product https://stripe.com/blog/billing",
		Author:    "Dana Reyes",
		ChannelID: "C042",
		Timestamp: "1726000000.000100",
		When:      when,
	}

	captures := p.ProcessMessage(context.Background(), msg)
	if len(captures) != 1 {
		t.Fatalf("got %d captures, want 1", len(captures))
	}
	c := captures[0]
	if c.Competitor != "Stripe" || c.Category != "Product Launch" || c.Provenance != domain.ProvenanceDirect {
		t.Fatalf("capture = %+v", c)
	}

	if len(repo.records) != 1 {
		t.Fatalf("got %d records, want 1", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Competitor != "Stripe" {
		t.Fatalf("competitor = %q", rec.Competitor)
	}
	if rec.URL != "https://stripe.com/blog/billing" {
		t.Fatalf("url = %q", rec.URL)
	}
	if rec.Category != "Product Launch" {
		t.Fatalf("category = %q", rec.Category)
	}
	if rec.Summary != msg.Text {
		t.Fatalf("summary = %q", rec.Summary)
	}
	if rec.SharedBy != "Dana Reyes" {
		t.Fatalf("shared_by = %q", rec.SharedBy)
	}
	if !rec.DateAdded.Equal(when) {
		t.Fatalf("date_added = %v, want %v", rec.DateAdded, when)
	}
	if rec.SlackLink != "https://slack.com/archives/C042/p1726000000000100" {
		t.Fatalf("slack_link = %q", rec.SlackLink)
	}
}

func TestProcessMessageIdempotent(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	p := newTestPipeline(repo, 0)
	msg := domain.Message{Text: "funding news https://ramp.com/series-d", Author: "a"}

	first := p.ProcessMessage(context.Background(), msg)
	second := p.ProcessMessage(context.Background(), msg)

	if len(first) != 1 {
		t.Fatalf("first pass captured %d, want 1", len(first))
	}
	if len(second) != 0 {
		t.Fatalf("second pass captured %d, want 0", len(second))
	}
	if len(repo.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(repo.records))
	}
}

func TestProcessMessageNoLinks(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	p := newTestPipeline(repo, 0)

	if got := p.ProcessMessage(context.Background(), domain.Message{Text: "no links today"}); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
	if len(repo.records) != 0 {
		t.Fatalf("store has %d records, want 0", len(repo.records))
	}
}

func TestProcessMessagePartialFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{insertErr: map[string]error{"https://adyen.com/a": errors.New("store rejected")}}
	p := newTestPipeline(repo, 0)
	msg := domain.Message{Text: "both moved on pricing https://adyen.com/a and https://stripe.com/b"}

	captures := p.ProcessMessage(context.Background(), msg)
	if len(captures) != 1 {
		t.Fatalf("got %d captures, want 1", len(captures))
	}
	if captures[0].Competitor != "Stripe" {
		t.Fatalf("surviving capture = %+v", captures[0])
	}
	if len(repo.records) != 1 || repo.records[0].URL != "https://stripe.com/b" {
		t.Fatalf("store = %+v", repo.records)
	}
}

func TestProcessMessageDedupFailsOpen(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{existsErr: errors.New("store unreachable")}
	p := newTestPipeline(repo, 0)
	msg := domain.Message{Text: "https://brex.com/launch is live"}

	captures := p.ProcessMessage(context.Background(), msg)
	if len(captures) != 1 {
		t.Fatalf("got %d captures, want 1 (gate must fail open)", len(captures))
	}
	if len(repo.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(repo.records))
	}
}

func TestProcessMessageTruncatesSummary(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	p := newTestPipeline(repo, 50)
	long := "https://finix.com/x " + strings.Repeat("padding ", 40)

	p.ProcessMessage(context.Background(), domain.Message{Text: long})
	if len(repo.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(repo.records))
	}
	if got := len([]rune(repo.records[0].Summary)); got != 50 {
		t.Fatalf("summary length = %d, want 50", got)
	}
}

func TestProcessMessageUnknownProvenance(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	p := newTestPipeline(repo, 0)

	captures := p.ProcessMessage(context.Background(), domain.Message{Text: "worth a read https://techcrunch.com/2025/z"})
	if len(captures) != 1 {
		t.Fatalf("got %d captures, want 1", len(captures))
	}
	c := captures[0]
	if c.Provenance != domain.ProvenanceUnknown {
		t.Fatalf("provenance = %q, want unknown", c.Provenance)
	}
	if c.Competitor != "[Source: Techcrunch]" {
		t.Fatalf("competitor = %q", c.Competitor)
	}
	if !repo.records[0].NeedsReview() {
		t.Fatal("record should be flagged for review")
	}
}
