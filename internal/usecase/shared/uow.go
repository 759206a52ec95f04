package shared

import (
	"context"

	"order-saga/internal/domain/order"
	"order-saga/internal/domain/stock"
	"order-saga/internal/event"
	"order-saga/internal/infra/sqlc"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

type Tx interface {
	Orders() OrderRepository
	Stocks() StockRepository
	Outbox() OutboxRepository
	DB() sqlc.DBTX
}

type OrderRepository interface {
	// Create inserts the order with its line items and assigns the generated id.
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) (int64, error)
	FindByID(ctx context.Context, tx sqlc.DBTX, id int64) (*order.Order, error)
	// CancelIfCreated persists a cancellation applied to o and reports whether this call
	// performed the CREATED -> CANCELLED transition in storage.
	CancelIfCreated(ctx context.Context, tx sqlc.DBTX, o *order.Order) (bool, error)
}

type StockRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, s *stock.Stock) error
	Lock(ctx context.Context, tx sqlc.DBTX, productID int64) (*stock.Stock, error)
	LockMany(ctx context.Context, tx sqlc.DBTX, productIDs []int64) (map[int64]*stock.Stock, error)
	Save(ctx context.Context, tx sqlc.DBTX, s *stock.Stock) error
	// RecordReservation returns false when the order was already reserved by an earlier delivery.
	RecordReservation(ctx context.Context, tx sqlc.DBTX, orderID int64, items []stock.ReservationItem) (bool, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, tx sqlc.DBTX, topic string, msg event.Message) error
}
