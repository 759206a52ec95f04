package consumer

import (
	"context"
	"log/slog"

	"order-saga/internal/event"
	"order-saga/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

// CompensationConsumer cancels orders whose stock reservation failed. Duplicate and late
// deliveries are harmless because Compensate only acts on CREATED orders.
type CompensationConsumer struct {
	orders commands.OrderCommands
	topic  string
	log    *slog.Logger
}

func NewCompensationConsumer(orders commands.OrderCommands, topics event.Topics, log *slog.Logger) *CompensationConsumer {
	return &CompensationConsumer{orders: orders, topic: topics.StockReservationFailed, log: log}
}

func (c *CompensationConsumer) Route() Route {
	return Route{Topic: c.topic, Handle: c.Handle}
}

func (c *CompensationConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	failed, err := event.Decode[event.StockReservationFailed](msg.Value)
	if err != nil || failed.OrderID <= 0 {
		c.log.Error("undecodable reservation failure dropped",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		return nil
	}

	cancelled, err := c.orders.Compensate(ctx, failed.OrderID, failed.Reason)
	if err != nil {
		return err
	}
	if cancelled {
		c.log.Info("order compensated", "order_id", failed.OrderID, "reason", failed.Reason)
	}
	return nil
}
