package bootstrap

import (
	"context"
	"log/slog"

	"order-saga/internal/consumer"
	"order-saga/internal/event"
	"order-saga/internal/infra/messaging"
	"order-saga/internal/pkg/clock"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/retrytopic"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewTopics,
		NewProducer,
		NewReaderFactory,
		NewRetryProcessor,
		NewConsumerGroup,
	),
)

func NewTopics(cfg config.Config) event.Topics {
	return event.Topics{
		OrderCreated:           cfg.Kafka.OrderCreatedTopic,
		OrderCancelled:         cfg.Kafka.OrderCancelledTopic,
		StockReserveRequested:  cfg.Kafka.StockReserveRequestedTopic,
		StockReservationFailed: cfg.Kafka.StockReservationFailedTopic,
	}
}

func NewProducer(lc fx.Lifecycle, cfg config.Config) messaging.Producer {
	w := messaging.NewWriter(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return w.Close()
		},
	})
	return w
}

func NewReaderFactory(cfg config.Config) consumer.ReaderFactory {
	return func(topic string) messaging.Consumer {
		return messaging.NewReader(cfg.Kafka, topic)
	}
}

func NewRetryProcessor(cfg config.Config, producer messaging.Producer, clk clock.Clock, log *slog.Logger) *retrytopic.Processor {
	return retrytopic.NewProcessor(retrytopic.PolicyFromConfig(cfg.Retry), producer, clk, log)
}

func NewConsumerGroup(log *slog.Logger, newReader consumer.ReaderFactory, cfg config.Config, clk clock.Clock) *consumer.Group {
	return consumer.NewGroup(log, newReader, cfg.Kafka, clk)
}
