package repository

import (
	"context"
	"encoding/json"

	"order-saga/internal/event"
	"order-saga/internal/infra"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/tracing"

	"github.com/google/uuid"
)

type OutboxWriteQueries interface {
	InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error
}

// OutboxRepository stores outgoing events in the caller's transaction; the relay publishes them
// after commit.
type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, tx sqlc.DBTX, topic string, msg event.Message) error {
	// trace context is captured now so the consumer span links back to the request
	headers, err := json.Marshal(tracing.InjectMap(ctx))
	if err != nil {
		return infra.WrapRepoErr("failed to encode outbox headers", err, infra.KindDBFailure)
	}

	params := sqlc.InsertOutboxEventParams{
		EventID:     uuid.New(),
		AggregateID: msg.Key,
		Topic:       topic,
		EventType:   msg.Type,
		Payload:     msg.Payload,
		Headers:     headers,
	}
	if err := r.queries.InsertOutboxEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to insert outbox event", err)
	}
	return nil
}
