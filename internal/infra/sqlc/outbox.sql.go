// source: outbox.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const claimPendingOutboxEvents = `-- name: ClaimPendingOutboxEvents :many
SELECT id, event_id, aggregate_id, topic, event_type, payload, headers, status, attempts, last_error, created_at, sent_at FROM outbox_events
WHERE status = 'pending'
ORDER BY id
LIMIT $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) ClaimPendingOutboxEvents(ctx context.Context, db DBTX, limit int32) ([]OutboxEvent, error) {
	rows, err := db.Query(ctx, claimPendingOutboxEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutboxEvent
	for rows.Next() {
		var i OutboxEvent
		if err := rows.Scan(
			&i.ID,
			&i.EventID,
			&i.AggregateID,
			&i.Topic,
			&i.EventType,
			&i.Payload,
			&i.Headers,
			&i.Status,
			&i.Attempts,
			&i.LastError,
			&i.CreatedAt,
			&i.SentAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO outbox_events (event_id, aggregate_id, topic, event_type, payload, headers)
VALUES ($1, $2, $3, $4, $5, $6)
`

type InsertOutboxEventParams struct {
	EventID     uuid.UUID `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	Topic       string    `json:"topic"`
	EventType   string    `json:"event_type"`
	Payload     []byte    `json:"payload"`
	Headers     []byte    `json:"headers"`
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, db DBTX, arg InsertOutboxEventParams) error {
	_, err := db.Exec(ctx, insertOutboxEvent,
		arg.EventID,
		arg.AggregateID,
		arg.Topic,
		arg.EventType,
		arg.Payload,
		arg.Headers,
	)
	return err
}

const markOutboxEventFailed = `-- name: MarkOutboxEventFailed :exec
UPDATE outbox_events
SET attempts   = attempts + 1,
    last_error = $1,
    status     = CASE WHEN attempts + 1 >= $2::int THEN 'failed' ELSE 'pending' END
WHERE id = $3
`

type MarkOutboxEventFailedParams struct {
	LastError   pgtype.Text `json:"last_error"`
	MaxAttempts int32       `json:"max_attempts"`
	ID          int64       `json:"id"`
}

func (q *Queries) MarkOutboxEventFailed(ctx context.Context, db DBTX, arg MarkOutboxEventFailedParams) error {
	_, err := db.Exec(ctx, markOutboxEventFailed, arg.LastError, arg.MaxAttempts, arg.ID)
	return err
}

const markOutboxEventsSent = `-- name: MarkOutboxEventsSent :exec
UPDATE outbox_events
SET status = 'sent', sent_at = now(), attempts = attempts + 1, last_error = NULL
WHERE id = ANY($1::bigint[])
`

func (q *Queries) MarkOutboxEventsSent(ctx context.Context, db DBTX, ids []int64) error {
	_, err := db.Exec(ctx, markOutboxEventsSent, ids)
	return err
}
