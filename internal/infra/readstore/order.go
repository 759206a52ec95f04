package readstore

import (
	"context"
	"time"

	"order-saga/internal/domain/order"
	"order-saga/internal/infra"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/pgconv"
	"order-saga/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadQueries interface {
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Order, error)
	ListOrdersByOwner(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByOwnerParams) ([]sqlc.Order, error)
	ListOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []int64) ([]sqlc.OrderItem, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id int64) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order by id", err)
	}

	views, err := r.withItems(ctx, []sqlc.Order{row})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (r *OrderReadStore) FindByOwnerFirstPage(ctx context.Context, owner order.OwnerRef, limit int32) ([]*queries.OrderView, error) {
	return r.listByOwner(ctx, ownerParams(owner, pgtype.Timestamptz{}, pgtype.Int8{}, limit))
}

func (r *OrderReadStore) FindByOwnerKeyset(ctx context.Context, owner order.OwnerRef, lastCreatedAt time.Time, lastID int64, limit int32) ([]*queries.OrderView, error) {
	return r.listByOwner(ctx, ownerParams(owner, pgconv.TimeToPgtype(lastCreatedAt), pgtype.Int8{Int64: lastID, Valid: true}, limit))
}

func (r *OrderReadStore) listByOwner(ctx context.Context, params sqlc.ListOrdersByOwnerParams) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrdersByOwner(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by owner", err)
	}
	if len(rows) == 0 {
		return []*queries.OrderView{}, nil
	}
	return r.withItems(ctx, rows)
}

// withItems loads the line items of all rows with a single query.
func (r *OrderReadStore) withItems(ctx context.Context, rows []sqlc.Order) ([]*queries.OrderView, error) {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	items, err := r.queries.ListOrderItemsByOrderIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}

	byOrder := make(map[int64][]queries.OrderItemView, len(rows))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], queries.OrderItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	views := make([]*queries.OrderView, len(rows))
	for i, row := range rows {
		views[i] = toOrderView(row, byOrder[row.ID])
	}
	return views, nil
}

func ownerParams(owner order.OwnerRef, afterCreatedAt pgtype.Timestamptz, afterID pgtype.Int8, limit int32) sqlc.ListOrdersByOwnerParams {
	return sqlc.ListOrdersByOwnerParams{
		UserID:         pgconv.Int8PtrToPgtype(owner.UserIDPtr()),
		SessionID:      pgconv.StringPtrToPgtype(owner.SessionIDPtr()),
		AfterCreatedAt: afterCreatedAt,
		AfterID:        afterID,
		RowLimit:       limit,
	}
}

func toOrderView(row sqlc.Order, items []queries.OrderItemView) *queries.OrderView {
	if items == nil {
		items = []queries.OrderItemView{}
	}
	return &queries.OrderView{
		ID:          row.ID,
		UserID:      pgconv.Int8PtrFromPgtype(row.UserID),
		SessionID:   pgconv.StringPtrFromPgtype(row.SessionID),
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		PhoneNumber: row.PhoneNumber,
		Street:      row.Street,
		HouseNumber: row.HouseNumber,
		City:        row.City,
		ZipCode:     row.ZipCode,
		Country:     row.Country,
		TotalAmount: row.TotalAmount,
		Status:      row.Status,
		Items:       items,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
