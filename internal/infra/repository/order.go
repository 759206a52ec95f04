package repository

import (
	"context"

	"order-saga/internal/domain/order"
	"order-saga/internal/infra"
	"order-saga/internal/infra/repository/converter"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/pgconv"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) (sqlc.CreateOrderRow, error)
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Order, error)
	ListOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []int64) ([]sqlc.OrderItem, error)
	CancelOrderIfCreated(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelOrderIfCreatedParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) (int64, error) {
	row, err := r.queries.CreateOrder(ctx, tx, converter.OrderToCreateParams(o))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create order", err)
	}

	for i, it := range o.Items() {
		if err := r.queries.CreateOrderItem(ctx, tx, converter.OrderItemToCreateParams(row.ID, i+1, it)); err != nil {
			return 0, infra.WrapRepoErr("failed to create order item", err)
		}
	}

	if err := o.AssignID(row.ID); err != nil {
		return 0, infra.WrapRepoErr("failed to assign order id", err, infra.KindDBFailure)
	}
	return row.ID, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id int64) (*order.Order, error) {
	row, err := r.queries.GetOrderByID(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order", err)
	}
	items, err := r.queries.ListOrderItemsByOrderIDs(ctx, tx, []int64{id})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}
	o, err := converter.OrderFromRows(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to map order", err, infra.KindDBFailure)
	}
	return o, nil
}

// CancelIfCreated stores a cancellation already applied to o, provided the row is still CREATED.
func (r *OrderRepository) CancelIfCreated(ctx context.Context, tx sqlc.DBTX, o *order.Order) (bool, error) {
	n, err := r.queries.CancelOrderIfCreated(ctx, tx, sqlc.CancelOrderIfCreatedParams{
		ID:        o.ID(),
		UpdatedAt: pgconv.TimeToPgtype(o.UpdatedAt()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel order", err)
	}
	return n == 1, nil
}
