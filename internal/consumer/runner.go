// Package consumer hosts the Kafka consumers of the saga: the reservation worker and its
// dead-letter handler, the compensation consumer and the notifier.
package consumer

import (
	"context"
	"log/slog"
	"time"

	"order-saga/internal/infra/messaging"
	"order-saga/internal/pkg/clock"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/pkg/tracing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

type Handler func(ctx context.Context, msg kafka.Message) error

type Route struct {
	Topic  string
	Handle Handler
}

type ReaderFactory func(topic string) messaging.Consumer

// Group runs a pool of readers per route inside one consumer group. A message is committed
// only after its handler returned nil; a failing handler is retried in place after a backoff,
// which keeps the partition order intact.
type Group struct {
	log       *slog.Logger
	newReader ReaderFactory
	readers   int
	backoff   time.Duration
	clock     clock.Clock
	tracer    trace.Tracer
}

func NewGroup(log *slog.Logger, newReader ReaderFactory, cfg config.KafkaConfig, clk clock.Clock) *Group {
	readers := cfg.Readers
	if readers < 1 {
		readers = 1
	}
	return &Group{
		log:       log,
		newReader: newReader,
		readers:   readers,
		backoff:   cfg.HandlerBackoff,
		clock:     clk,
		tracer:    otel.Tracer("order-saga/consumer"),
	}
}

// Run blocks until ctx is cancelled or a reader fails.
func (g *Group) Run(ctx context.Context, routes ...Route) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, route := range routes {
		for i := 0; i < g.readers; i++ {
			reader := g.newReader(route.Topic)
			eg.Go(func() error {
				return g.consume(ctx, reader, route)
			})
		}
	}
	return eg.Wait()
}

func (g *Group) consume(ctx context.Context, reader messaging.Consumer, route Route) error {
	defer func() {
		if err := reader.Close(); err != nil {
			g.log.Warn("kafka reader close failed", "topic", route.Topic, "error", err)
		}
	}()

	g.log.Info("consumer started", "topic", route.Topic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.Wrapf(err, "fetch from %s", route.Topic)
		}

		if err := g.handleUntilDone(ctx, route, msg); err != nil {
			// only cancellation stops the retry loop
			return nil
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.Wrapf(err, "commit %s/%d@%d", msg.Topic, msg.Partition, msg.Offset)
		}
	}
}

func (g *Group) handleUntilDone(ctx context.Context, route Route, msg kafka.Message) error {
	for {
		err := g.handle(ctx, route, msg)
		if err == nil {
			return nil
		}
		g.log.Warn("message handling failed, retrying",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		if err := g.clock.Sleep(ctx, g.backoff); err != nil {
			return err
		}
	}
}

func (g *Group) handle(ctx context.Context, route Route, msg kafka.Message) error {
	ctx = tracing.ExtractKafkaHeaders(ctx, msg.Headers)
	ctx, span := g.tracer.Start(ctx, "consume "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
			attribute.String("messaging.kafka.message.key", string(msg.Key)),
		))
	defer span.End()

	if err := route.Handle(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
