package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"CompetitionBot/internal/domain"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock"), time.Second), mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExistsURL(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	query := regexp.QuoteMeta("SELECT 1 FROM competitor_intel WHERE url = $1 LIMIT 1")

	mock.ExpectQuery(query).
		WithArgs("https://stripe.com/a").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsURL(context.Background(), "https://stripe.com/a")
	if err != nil {
		t.Fatalf("ExistsURL: %v", err)
	}
	if !exists {
		t.Fatal("want exists = true")
	}
	expectMet(t, mock)
}

func TestExistsURLMiss(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM competitor_intel").
		WithArgs("https://stripe.com/missing").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err := repo.ExistsURL(context.Background(), "https://stripe.com/missing")
	if err != nil {
		t.Fatalf("ExistsURL: %v", err)
	}
	if exists {
		t.Fatal("want exists = false for empty result")
	}
	expectMet(t, mock)
}

func TestExistsURLQueryError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM competitor_intel").
		WillReturnError(errors.New("connection refused"))

	if _, err := repo.ExistsURL(context.Background(), "https://stripe.com/a"); err == nil {
		t.Fatal("expected error to propagate")
	}
	expectMet(t, mock)
}

func TestInsert(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	rec := domain.IntelRecord{
		Competitor: "Stripe",
		URL:        "https://stripe.com/a",
		Category:   "Product Launch",
		Summary:    "Stripe launched a thing",
		SharedBy:   "Dana",
		DateAdded:  time.Date(2025, time.June, 3, 12, 0, 0, 0, time.UTC),
		SlackLink:  "https://slack.com/archives/C042/p1",
	}

	query := regexp.QuoteMeta("INSERT INTO competitor_intel (competitor,url,category,summary,shared_by,date_added,slack_link) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id")
	mock.ExpectQuery(query).
		WithArgs(rec.Competitor, rec.URL, rec.Category, rec.Summary, rec.SharedBy, "2025-06-03", rec.SlackLink).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.Insert(context.Background(), rec)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
	expectMet(t, mock)
}

func TestListRange(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows(intelColumns).
		AddRow(2, "Ramp", "https://ramp.com/b", "Funding", "raised", "u2", time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), "").
		AddRow(1, "Stripe", "https://stripe.com/a", "Pricing", "changed", "u1", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), "")

	query := regexp.QuoteMeta("SELECT id, competitor, url, category, summary, shared_by, date_added, slack_link FROM competitor_intel WHERE date_added >= $1 AND date_added < $2 ORDER BY date_added DESC, id DESC")
	mock.ExpectQuery(query).
		WithArgs("2025-06-01", "2025-07-01").
		WillReturnRows(rows)

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	records, err := repo.ListRange(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Competitor != "Ramp" || records[1].Competitor != "Stripe" {
		t.Fatalf("order = %q, %q", records[0].Competitor, records[1].Competitor)
	}
	expectMet(t, mock)
}

func TestUpdatePartialFields(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	category := "Funding"
	summary := "corrected"

	query := regexp.QuoteMeta("UPDATE competitor_intel SET category = $1, summary = $2 WHERE id = $3")
	mock.ExpectExec(query).
		WithArgs(category, summary, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 3, domain.IntelUpdate{Category: &category, Summary: &summary})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	expectMet(t, mock)
}

func TestUpdateNoFields(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	// No fields set means no statement at all.
	if err := repo.Update(context.Background(), 3, domain.IntelUpdate{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	expectMet(t, mock)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta("DELETE FROM competitor_intel WHERE id = $1")
	mock.ExpectExec(query).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	expectMet(t, mock)
}
