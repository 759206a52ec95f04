package consumer

import (
	"context"
	"log/slog"

	"order-saga/internal/event"
	"order-saga/internal/infra/messaging"

	"github.com/segmentio/kafka-go"
)

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, ev event.OrderCreated) error
	SendOrderCancelled(ctx context.Context, ev event.OrderCancelled) error
}

// Deduper reports whether key is seen for the first time.
type Deduper interface {
	FirstSeen(ctx context.Context, key string) (bool, error)
}

// Notifier emails the customer when an order is created or cancelled. Mail failures are
// logged and the message is committed anyway.
type Notifier struct {
	mailer Mailer
	dedupe Deduper
	topics event.Topics
	log    *slog.Logger
}

func NewNotifier(mailer Mailer, dedupe Deduper, topics event.Topics, log *slog.Logger) *Notifier {
	return &Notifier{mailer: mailer, dedupe: dedupe, topics: topics, log: log}
}

func (n *Notifier) Routes() []Route {
	return []Route{
		{Topic: n.topics.OrderCreated, Handle: n.HandleOrderCreated},
		{Topic: n.topics.OrderCancelled, Handle: n.HandleOrderCancelled},
	}
}

func (n *Notifier) HandleOrderCreated(ctx context.Context, msg kafka.Message) error {
	ev, err := event.Decode[event.OrderCreated](msg.Value)
	if err != nil {
		n.log.Error("undecodable order created event dropped", "offset", msg.Offset, "error", err)
		return nil
	}
	if n.duplicate(ctx, msg, event.TypeOrderCreated) {
		return nil
	}

	if err := n.mailer.SendOrderConfirmation(ctx, ev); err != nil {
		n.log.Error("order confirmation email failed", "order_id", ev.OrderID, "error", err)
		return nil
	}
	n.log.Info("order confirmation email sent", "order_id", ev.OrderID)
	return nil
}

func (n *Notifier) HandleOrderCancelled(ctx context.Context, msg kafka.Message) error {
	ev, err := event.Decode[event.OrderCancelled](msg.Value)
	if err != nil {
		n.log.Error("undecodable order cancelled event dropped", "offset", msg.Offset, "error", err)
		return nil
	}
	if n.duplicate(ctx, msg, event.TypeOrderCancelled) {
		return nil
	}

	if err := n.mailer.SendOrderCancelled(ctx, ev); err != nil {
		n.log.Error("order cancellation email failed", "order_id", ev.OrderID, "error", err)
		return nil
	}
	n.log.Info("order cancellation email sent", "order_id", ev.OrderID)
	return nil
}

// duplicate suppresses redelivered events, keyed by event type and event id. The handler's
// own type stands in when the event-type header is missing. When the store is unreachable
// the mail is sent anyway.
func (n *Notifier) duplicate(ctx context.Context, msg kafka.Message, fallbackType string) bool {
	id := messaging.Header(msg, messaging.HeaderEventID)
	if id == "" || n.dedupe == nil {
		return false
	}
	eventType := messaging.Header(msg, messaging.HeaderEventType)
	if eventType == "" {
		eventType = fallbackType
	}
	first, err := n.dedupe.FirstSeen(ctx, dedupeKey(eventType, id))
	if err != nil {
		n.log.Warn("dedupe lookup failed", "event_id", id, "event_type", eventType, "error", err)
		return false
	}
	if !first {
		n.log.Info("duplicate event skipped", "event_id", id, "event_type", eventType, "topic", msg.Topic)
	}
	return !first
}

func dedupeKey(eventType, eventID string) string {
	return "notify:" + eventType + ":" + eventID
}
