package commands

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order.go -package=commandsmock

import (
	"context"
	"log/slog"

	"order-saga/internal/domain/order"
	"order-saga/internal/domain/stock"
	"order-saga/internal/event"
	"order-saga/internal/infra"
	"order-saga/internal/pkg/clock"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/shared"
)

var (
	ErrCartEmpty       = errs.New("cart is empty")
	ErrCartUnavailable = errs.New("cart service unavailable")
)

type CreateOrderInput struct {
	Owner    order.OwnerRef
	Shipping order.ShippingInfo
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error)
	CancelOrder(ctx context.Context, owner order.OwnerRef, orderID int64) error
	// Compensate cancels a CREATED order after a terminal reservation failure. It reports
	// whether this call performed the transition; repeated calls are no-ops.
	Compensate(ctx context.Context, orderID int64, reason string) (bool, error)
}

type orderCommandsImpl struct {
	uow    shared.UnitOfWork
	cart   CartClient
	topics event.Topics
	clock  clock.Clock
	logger *slog.Logger
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	cart CartClient,
	topics event.Topics,
	clock clock.Clock,
	logger *slog.Logger,
) OrderCommands {
	return &orderCommandsImpl{
		uow:    uow,
		cart:   cart,
		topics: topics,
		clock:  clock,
		logger: logger,
	}
}

func (c *orderCommandsImpl) CreateOrder(ctx context.Context, in CreateOrderInput) (*order.Order, error) {
	if !in.Owner.IsValid() {
		return nil, order.ErrMissingOwnerOrSession
	}
	shipping, err := order.NewShippingInfo(in.Shipping)
	if err != nil {
		return nil, err
	}

	cart, err := c.cart.Get(ctx, in.Owner)
	if err != nil {
		return nil, errs.Mark(err, ErrCartUnavailable)
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	items, err := snapshotItems(cart)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// rebuilt on every attempt since a retried transaction must not see an assigned id
		o, err := order.NewOrder(in.Owner, shipping, items, c.clock.Now())
		if err != nil {
			return err
		}
		if _, err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			return err
		}
		if err := c.appendCreatedEvents(ctx, tx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is durable at this point; a failed clear only leaves stale cart contents.
	if err := c.cart.Clear(ctx, in.Owner); err != nil {
		c.logger.Warn("failed to clear cart after order creation",
			"order_id", created.ID(),
			"owner", in.Owner.String(),
			"error", err.Error())
	}

	c.logger.Info("order created",
		"order_id", created.ID(),
		"owner", in.Owner.String(),
		"total", created.Total().StringFixed(2),
		"items", len(items))
	return created, nil
}

// snapshotItems runs the advertised-availability pre-check and freezes name and price.
// The check is advisory; the ledger makes the authoritative decision.
func snapshotItems(cart *Cart) ([]order.Item, error) {
	items := make([]order.Item, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if line.Quantity > line.AvailableQuantity {
			return nil, &stock.InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Sellable:  max(line.AvailableQuantity, 0),
			}
		}
		it, err := order.NewItem(line.ProductID, line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (c *orderCommandsImpl) appendCreatedEvents(ctx context.Context, tx shared.Tx, o *order.Order) error {
	lines := make([]event.LineItem, 0, len(o.Items()))
	reserve := make([]event.ReserveItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		lines = append(lines, event.LineItem{
			ProductID: it.ProductID(),
			Name:      it.Name(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
		})
		reserve = append(reserve, event.ReserveItem{
			ProductID: it.ProductID(),
			Quantity:  it.Quantity(),
		})
	}

	created, err := event.Encode(event.TypeOrderCreated, o.ID(), event.OrderCreated{
		OrderID:     o.ID(),
		UserID:      o.Owner().UserIDPtr(),
		SessionID:   o.Owner().SessionIDPtr(),
		Email:       o.Shipping().Email,
		FirstName:   o.Shipping().FirstName,
		TotalAmount: o.Total(),
		Items:       lines,
	})
	if err != nil {
		return errs.Wrap(err, "encode order created event")
	}
	requested, err := event.Encode(event.TypeStockReserveRequested, o.ID(), event.StockReserveRequested{
		OrderID: o.ID(),
		Items:   reserve,
	})
	if err != nil {
		return errs.Wrap(err, "encode stock reserve requested event")
	}

	if err := tx.Outbox().Append(ctx, tx.DB(), c.topics.OrderCreated, created); err != nil {
		return err
	}
	return tx.Outbox().Append(ctx, tx.DB(), c.topics.StockReserveRequested, requested)
}

func (c *orderCommandsImpl) CancelOrder(ctx context.Context, owner order.OwnerRef, orderID int64) error {
	if !owner.IsValid() {
		return order.ErrMissingOwnerOrSession
	}
	if orderID <= 0 {
		return order.ErrOrderNotFound
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return order.ErrOrderNotFound
			}
			return err
		}
		if !o.OwnedBy(owner) {
			return order.ErrOrderNotFound
		}
		if err := o.Cancel(c.clock.Now()); err != nil {
			return err
		}

		// compensation may have won the race since the read
		cancelled, err := tx.Orders().CancelIfCreated(ctx, tx.DB(), o)
		if err != nil {
			return err
		}
		if !cancelled {
			return order.ErrNotCancellable
		}
		c.logger.Info("order cancelled by owner", "order_id", orderID, "owner", owner.String())
		return nil
	})
}

func (c *orderCommandsImpl) Compensate(ctx context.Context, orderID int64, reason string) (bool, error) {
	var cancelled bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled = false

		o, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				c.logger.Warn("compensation skipped: order not found", "order_id", orderID)
				return nil
			}
			return err
		}
		status := o.Status()
		if err := o.Cancel(c.clock.Now()); err != nil {
			c.logger.Info("compensation skipped: order is saga-terminal",
				"order_id", orderID,
				"status", status.String())
			return nil
		}

		ok, err := tx.Orders().CancelIfCreated(ctx, tx.DB(), o)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		msg, err := event.Encode(event.TypeOrderCancelled, orderID, event.OrderCancelled{
			OrderID: orderID,
			Email:   o.Shipping().Email,
			Reason:  reason,
		})
		if err != nil {
			return errs.Wrap(err, "encode order cancelled event")
		}
		if err := tx.Outbox().Append(ctx, tx.DB(), c.topics.OrderCancelled, msg); err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if cancelled {
		c.logger.Info("order compensated", "order_id", orderID, "reason", reason)
	}
	return cancelled, nil
}
