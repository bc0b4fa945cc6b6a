package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// Failed events are retried with a linear backoff, capped at this many steps.
const maxBackoffSteps = 10

// OutboxEvent is a side effect recorded in the same transaction as the
// state change that caused it. A transition can therefore never be rolled
// back by a broker outage, and an event can never exist without its
// transition.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

func (e OutboxEvent) Validate() error {
	if e.ID == "" {
		return errors.New("outbox id is required")
	}
	if e.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(e.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch e.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", e.Status)
	}
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	PurgeSent(ctx context.Context, olderThan time.Duration) (int64, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	const query = `
INSERT INTO outbox_events
	(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.execer().ExecContext(ctx, query,
		event.ID,
		event.RequestID,
		event.AggregateType,
		event.AggregateID,
		event.EventType,
		event.Topic,
		event.Payload,
		event.Status,
	)
	return err
}

// ListPending returns pending and retryable failed events in insertion
// order. Events whose backoff window has not elapsed are skipped.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	const query = `
SELECT id::text, aggregate_type, aggregate_id::text, event_type, topic,
       payload, status, retry_count, next_retry_at
FROM outbox_events
WHERE status IN ($1, $2)
  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at
LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var (
			e     OutboxEvent
			retry sql.NullTime
		)
		err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &retry)
		if err != nil {
			return nil, err
		}
		if retry.Valid {
			e.NextRetryAt = retry.Time
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	const query = `
UPDATE outbox_events
SET status = $2,
    retry_count = retry_count + 1,
    error_message = LEFT($3, 500),
    next_retry_at = NOW() + (LEAST(retry_count + 1, $4) * INTERVAL '15 seconds'),
    updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason, maxBackoffSteps)
	return err
}

// PurgeSent deletes delivered events older than the given age so the
// table does not grow without bound.
func (r *outboxRepository) PurgeSent(ctx context.Context, olderThan time.Duration) (int64, error) {
	const query = `
DELETE FROM outbox_events
WHERE status = $1 AND processed_at < NOW() - $2::interval`

	interval := fmt.Sprintf("%d seconds", int(olderThan.Seconds()))
	res, err := r.db.ExecContext(ctx, query, OutboxStatusSent, interval)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
