package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/ports"
)

const intelTable = "competitor_intel"

var intelColumns = []string{"id", "competitor", "url", "category", "summary", "shared_by", "date_added", "slack_link"}

// PostgresRepository persists intel records in Postgres. Every call runs
// under a bounded timeout; a timeout surfaces as a normal error the
// caller may retry, never a crash.
type PostgresRepository struct {
	db      *sqlx.DB
	timeout time.Duration
	builder sq.StatementBuilderType
}

var _ ports.IntelStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sqlx handle; timeout defaults to 5s.
func NewPostgresRepository(db *sqlx.DB, timeout time.Duration) *PostgresRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresRepository{
		db:      db,
		timeout: timeout,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ExistsURL reports whether a record with this exact URL already exists.
// No normalization happens here: URLs differing by a trailing slash are
// distinct on purpose.
func (r *PostgresRepository) ExistsURL(ctx context.Context, url string) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		From(intelTable).
		Where(sq.Eq{"url": url}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build url lookup: %w", err)
	}

	ctx, cancel := r.bound(ctx)
	defer cancel()

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup url: %w", err)
	}
	return true, nil
}

// Insert stores a new record and returns its id.
func (r *PostgresRepository) Insert(ctx context.Context, rec domain.IntelRecord) (int64, error) {
	query, args, err := r.builder.
		Insert(intelTable).
		Columns(intelColumns[1:]...).
		Values(rec.Competitor, rec.URL, rec.Category, rec.Summary, rec.SharedBy, rec.DateAdded.Format("2006-01-02"), rec.SlackLink).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	ctx, cancel := r.bound(ctx)
	defer cancel()

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}

// ListAll returns every record, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]domain.IntelRecord, error) {
	query, args, err := r.selectAll().OrderBy("date_added DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}
	return r.list(ctx, query, args)
}

// ListRange returns records with from <= date_added < to, newest first.
func (r *PostgresRepository) ListRange(ctx context.Context, from, to time.Time) ([]domain.IntelRecord, error) {
	query, args, err := r.selectAll().
		Where(sq.GtOrEq{"date_added": from.Format("2006-01-02")}).
		Where(sq.Lt{"date_added": to.Format("2006-01-02")}).
		OrderBy("date_added DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build range list: %w", err)
	}
	return r.list(ctx, query, args)
}

// Update applies the non-nil fields to an existing record.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields domain.IntelUpdate) error {
	update := r.builder.Update(intelTable).Where(sq.Eq{"id": id})
	changed := false
	if fields.Competitor != nil {
		update = update.Set("competitor", *fields.Competitor)
		changed = true
	}
	if fields.Category != nil {
		update = update.Set("category", *fields.Category)
		changed = true
	}
	if fields.URL != nil {
		update = update.Set("url", *fields.URL)
		changed = true
	}
	if fields.Summary != nil {
		update = update.Set("summary", *fields.Summary)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	ctx, cancel := r.bound(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update record %d: %w", id, err)
	}
	return nil
}

// Delete removes a record by id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete(intelTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	ctx, cancel := r.bound(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	return nil
}

func (r *PostgresRepository) selectAll() sq.SelectBuilder {
	return r.builder.Select(intelColumns...).From(intelTable)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args []interface{}) ([]domain.IntelRecord, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var records []domain.IntelRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (r *PostgresRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}
