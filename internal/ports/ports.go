package ports

import (
	"context"
	"time"

	"CompetitionBot/internal/domain"
)

// IntelRepository is the pipeline's write side of the store: the dedup
// point lookup and the insert. The core issues no other store operations.
type IntelRepository interface {
	ExistsURL(ctx context.Context, url string) (bool, error)
	Insert(ctx context.Context, rec domain.IntelRecord) (int64, error)
}

// IntelReader serves the reporting and dashboard layers, which only read
// what the pipeline persisted.
type IntelReader interface {
	ListAll(ctx context.Context) ([]domain.IntelRecord, error)
	ListRange(ctx context.Context, from, to time.Time) ([]domain.IntelRecord, error)
}

// IntelEditor is the out-of-band correction surface: fixing a
// misattributed competitor or dropping a bad row. The pipeline itself
// never updates or deletes a record after creation.
type IntelEditor interface {
	Update(ctx context.Context, id int64, fields domain.IntelUpdate) error
	Delete(ctx context.Context, id int64) error
}

// IntelStore is the full store surface, implemented by the Postgres
// repository and consumed piecemeal by each collaborator.
type IntelStore interface {
	IntelRepository
	IntelReader
	IntelEditor
}

// MessageSource supplies historical messages for import. The pipeline
// never fetches messages itself.
type MessageSource interface {
	Fetch(ctx context.Context, oldest time.Time) ([]domain.Message, error)
}

// Replier posts confirmations back into the originating chat thread.
type Replier interface {
	Reply(ctx context.Context, channelID, threadTS, text string) error
}
