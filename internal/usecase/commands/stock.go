package commands

//go:generate mockgen -source=stock.go -destination=../../../tests/mock/commands/stock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"order-saga/internal/domain/stock"
	"order-saga/internal/event"
	"order-saga/internal/infra"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/shared"
)

var ErrInvalidOrderID = errs.New("invalid order id in reservation")

type StockCommands interface {
	CreateStock(ctx context.Context, productID int64, available int32) (*stock.Stock, error)
	AdjustAvailable(ctx context.Context, productID int64, delta int32) (*stock.Stock, error)
	ReserveOne(ctx context.Context, productID int64, qty int32) (*stock.Stock, error)
	// ReserveBatch reserves every item of an order or none of them. A redelivered request for
	// an order that was already reserved succeeds without touching the counters.
	ReserveBatch(ctx context.Context, orderID int64, items []stock.ReservationItem) error
	// PublishReservationFailed records the terminal failure event for the order saga.
	PublishReservationFailed(ctx context.Context, orderID int64, reason string) error
}

type stockCommandsImpl struct {
	uow    shared.UnitOfWork
	topics event.Topics
	logger *slog.Logger
}

func NewStockCommands(uow shared.UnitOfWork, topics event.Topics, logger *slog.Logger) StockCommands {
	return &stockCommandsImpl{
		uow:    uow,
		topics: topics,
		logger: logger,
	}
}

func (c *stockCommandsImpl) CreateStock(ctx context.Context, productID int64, available int32) (*stock.Stock, error) {
	s, err := stock.NewStock(productID, available)
	if err != nil {
		return nil, err
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Stocks().Create(ctx, tx.DB(), s); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return stock.ErrStockAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *stockCommandsImpl) AdjustAvailable(ctx context.Context, productID int64, delta int32) (*stock.Stock, error) {
	return c.mutateOne(ctx, productID, func(s *stock.Stock) error {
		return s.AdjustAvailable(delta)
	})
}

func (c *stockCommandsImpl) ReserveOne(ctx context.Context, productID int64, qty int32) (*stock.Stock, error) {
	return c.mutateOne(ctx, productID, func(s *stock.Stock) error {
		return s.Reserve(qty)
	})
}

func (c *stockCommandsImpl) mutateOne(ctx context.Context, productID int64, mutate func(*stock.Stock) error) (*stock.Stock, error) {
	if productID <= 0 {
		return nil, stock.ErrInvalidProductID
	}

	var out *stock.Stock
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Stocks().Lock(ctx, tx.DB(), productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return stock.ErrStockNotFound
			}
			return err
		}
		if err := mutate(s); err != nil {
			return err
		}
		if err := tx.Stocks().Save(ctx, tx.DB(), s); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stockCommandsImpl) ReserveBatch(ctx context.Context, orderID int64, items []stock.ReservationItem) error {
	if orderID <= 0 {
		return ErrInvalidOrderID
	}
	merged, err := stock.MergeItems(items)
	if err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		first, err := tx.Stocks().RecordReservation(ctx, tx.DB(), orderID, merged)
		if err != nil {
			return err
		}
		if !first {
			c.logger.Info("reservation already applied", "order_id", orderID)
			return nil
		}

		// rows are locked in ascending product id order, matching every other batch
		records, err := tx.Stocks().LockMany(ctx, tx.DB(), stock.ProductIDs(merged))
		if err != nil {
			return err
		}
		if err := stock.ReserveAll(records, merged); err != nil {
			return err
		}
		for _, it := range merged {
			if err := tx.Stocks().Save(ctx, tx.DB(), records[it.ProductID]); err != nil {
				return err
			}
		}

		c.logger.Info("stock reserved", "order_id", orderID, "products", len(merged))
		return nil
	})
}

func (c *stockCommandsImpl) PublishReservationFailed(ctx context.Context, orderID int64, reason string) error {
	msg, err := event.Encode(event.TypeStockReservationFailed, orderID, event.StockReservationFailed{
		OrderID: orderID,
		Reason:  reason,
	})
	if err != nil {
		return errs.Wrap(err, "encode stock reservation failed event")
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Append(ctx, tx.DB(), c.topics.StockReservationFailed, msg)
	})
}
