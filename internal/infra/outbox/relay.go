// Package outbox forwards rows written to outbox_events inside business transactions to Kafka.
package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"order-saga/internal/infra/messaging"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/segmentio/kafka-go"
)

type Queries interface {
	ClaimPendingOutboxEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.OutboxEvent, error)
	MarkOutboxEventsSent(ctx context.Context, db sqlc.DBTX, ids []int64) error
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) error
}

type Relay struct {
	log         *slog.Logger
	uow         shared.UnitOfWork
	queries     Queries
	producer    messaging.Producer
	interval    time.Duration
	batchSize   int32
	maxAttempts int32
}

func NewRelay(log *slog.Logger, uow shared.UnitOfWork, queries Queries, producer messaging.Producer, cfg config.OutboxConfig) *Relay {
	return &Relay{
		log:         log,
		uow:         uow,
		queries:     queries,
		producer:    producer,
		interval:    cfg.Interval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
	}
}

func (r *Relay) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopping")
			return nil
		case <-t.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.Error("outbox relay batch failed", "error", err)
			}
		}
	}
}

// RunOnce claims one batch and publishes it while holding the row locks, so concurrent relays
// never publish the same row. It returns the number of rows marked sent.
//
// Once an event of an aggregate fails, later events of the same aggregate stay pending for
// the next batch so per-order publish order is kept.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		events, err := r.queries.ClaimPendingOutboxEvents(ctx, tx.DB(), r.batchSize)
		if err != nil {
			return errs.Wrap(err, "claim outbox events")
		}
		if len(events) == 0 {
			return nil
		}

		blocked := make(map[string]bool)
		ids := make([]int64, 0, len(events))
		for _, e := range events {
			if blocked[e.AggregateID] {
				continue
			}
			if err := r.publish(ctx, e); err != nil {
				blocked[e.AggregateID] = true
				r.log.Warn("outbox publish failed",
					"event_id", e.EventID.String(), "topic", e.Topic, "attempts", e.Attempts+1, "error", err)
				if err := r.queries.MarkOutboxEventFailed(ctx, tx.DB(), sqlc.MarkOutboxEventFailedParams{
					LastError:   pgtype.Text{String: err.Error(), Valid: true},
					MaxAttempts: r.maxAttempts,
					ID:          e.ID,
				}); err != nil {
					return errs.Wrap(err, "mark outbox event failed")
				}
				continue
			}
			ids = append(ids, e.ID)
		}

		if len(ids) > 0 {
			if err := r.queries.MarkOutboxEventsSent(ctx, tx.DB(), ids); err != nil {
				return errs.Wrap(err, "mark outbox events sent")
			}
		}
		sent = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if sent > 0 {
		r.log.Debug("outbox events published", "count", sent)
	}
	return sent, nil
}

func (r *Relay) publish(ctx context.Context, e sqlc.OutboxEvent) error {
	msg := kafka.Message{
		Topic: e.Topic,
		Key:   []byte(e.AggregateID),
		Value: e.Payload,
	}

	if len(e.Headers) > 0 {
		var stored map[string]string
		if err := json.Unmarshal(e.Headers, &stored); err != nil {
			r.log.Warn("outbox headers unreadable", "event_id", e.EventID.String(), "error", err)
		}
		for k, v := range stored {
			msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
		}
	}
	msg.Headers = append(msg.Headers,
		kafka.Header{Key: messaging.HeaderEventType, Value: []byte(e.EventType)},
		kafka.Header{Key: messaging.HeaderEventID, Value: []byte(e.EventID.String())},
	)

	return r.producer.WriteMessages(ctx, msg)
}
