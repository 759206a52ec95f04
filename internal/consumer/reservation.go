package consumer

import (
	"context"
	"log/slog"
	"strconv"

	"order-saga/internal/domain/stock"
	"order-saga/internal/event"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/pkg/retrytopic"
	"order-saga/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

// ReservationWorker applies stock reservation requests to the ledger. Success publishes
// nothing; failures go through the retry topic and finally the dead-letter topic.
type ReservationWorker struct {
	stock commands.StockCommands
	retry *retrytopic.Processor
	topic string
	log   *slog.Logger
}

func NewReservationWorker(stockCmd commands.StockCommands, retry *retrytopic.Processor, topics event.Topics, log *slog.Logger) *ReservationWorker {
	return &ReservationWorker{
		stock: stockCmd,
		retry: retry,
		topic: topics.StockReserveRequested,
		log:   log,
	}
}

// Routes subscribes to the request topic and its retry topic.
func (w *ReservationWorker) Routes() []Route {
	topics := w.retry.Topics(w.topic)
	routes := make([]Route, 0, len(topics))
	for _, t := range topics {
		routes = append(routes, Route{Topic: t, Handle: w.Handle})
	}
	return routes
}

func (w *ReservationWorker) Handle(ctx context.Context, msg kafka.Message) error {
	return w.retry.Process(ctx, msg, w.reserve)
}

func (w *ReservationWorker) reserve(ctx context.Context, msg kafka.Message) error {
	req, err := event.Decode[event.StockReserveRequested](msg.Value)
	if err != nil {
		return retrytopic.Poison(errs.Wrap(err, "decode stock reserve request"))
	}

	items := make([]stock.ReservationItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = stock.ReservationItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	err = w.stock.ReserveBatch(ctx, req.OrderID, items)
	switch {
	case err == nil:
		w.log.Info("reservation applied", "order_id", req.OrderID, "attempt", retrytopic.Attempt(msg))
		return nil
	case errs.Is(err, commands.ErrInvalidOrderID),
		errs.Is(err, stock.ErrEmptyReservation),
		errs.Is(err, stock.ErrInvalidProductID),
		errs.Is(err, stock.ErrInvalidQuantity):
		return retrytopic.Poison(err)
	default:
		return err
	}
}

// DeadLetterHandler turns an exhausted reservation request into StockReservationFailed.
type DeadLetterHandler struct {
	stock commands.StockCommands
	topic string
	log   *slog.Logger
}

func NewDeadLetterHandler(stockCmd commands.StockCommands, retry *retrytopic.Processor, topics event.Topics, log *slog.Logger) *DeadLetterHandler {
	return &DeadLetterHandler{
		stock: stockCmd,
		topic: retry.Policy().DLTTopic(topics.StockReserveRequested),
		log:   log,
	}
}

func (h *DeadLetterHandler) Route() Route {
	return Route{Topic: h.topic, Handle: h.Handle}
}

const defaultFailureReason = "stock reservation failed"

func (h *DeadLetterHandler) Handle(ctx context.Context, msg kafka.Message) error {
	orderID := h.orderID(msg)
	if orderID <= 0 {
		h.log.Error("dead letter without order id dropped",
			"partition", msg.Partition, "offset", msg.Offset, "key", string(msg.Key))
		return nil
	}

	reason := retrytopic.Exception(msg)
	if reason == "" {
		reason = defaultFailureReason
	}

	if err := h.stock.PublishReservationFailed(ctx, orderID, reason); err != nil {
		return err
	}
	h.log.Warn("stock reservation failed for order",
		"order_id", orderID, "attempts", retrytopic.Attempt(msg), "reason", reason)
	return nil
}

// orderID prefers the payload and falls back to the message key, which poison messages
// still carry.
func (h *DeadLetterHandler) orderID(msg kafka.Message) int64 {
	if req, err := event.Decode[event.StockReserveRequested](msg.Value); err == nil && req.OrderID > 0 {
		return req.OrderID
	}
	id, err := strconv.ParseInt(string(msg.Key), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
