package repository

import (
	"context"
	"encoding/json"

	"order-saga/internal/domain/stock"
	"order-saga/internal/infra"
	"order-saga/internal/infra/repository/converter"
	"order-saga/internal/infra/sqlc"
)

type StockWriteQueries interface {
	CreateStock(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateStockParams) (sqlc.Stock, error)
	LockStockByProductID(ctx context.Context, db sqlc.DBTX, productID int64) (sqlc.Stock, error)
	LockStocksByProductIDs(ctx context.Context, db sqlc.DBTX, productIds []int64) ([]sqlc.Stock, error)
	UpdateStockQuantities(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateStockQuantitiesParams) error
	InsertStockReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertStockReservationParams) (int64, error)
}

type StockRepository struct {
	queries StockWriteQueries
	db      sqlc.DBTX
}

func NewStockRepository(queries StockWriteQueries, db sqlc.DBTX) *StockRepository {
	return &StockRepository{
		queries: queries,
		db:      db,
	}
}

func (r *StockRepository) Create(ctx context.Context, tx sqlc.DBTX, s *stock.Stock) error {
	params := sqlc.CreateStockParams{
		ProductID:         s.ProductID(),
		AvailableQuantity: s.Available(),
	}
	if _, err := r.queries.CreateStock(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create stock", err)
	}
	return nil
}

// Lock reads the record with a row lock held until the transaction ends.
func (r *StockRepository) Lock(ctx context.Context, tx sqlc.DBTX, productID int64) (*stock.Stock, error) {
	row, err := r.queries.LockStockByProductID(ctx, tx, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock stock", err)
	}
	return converter.StockFromRow(row), nil
}

// LockMany locks the existing records among productIDs in ascending id order.
// Ids without a record are absent from the result.
func (r *StockRepository) LockMany(ctx context.Context, tx sqlc.DBTX, productIDs []int64) (map[int64]*stock.Stock, error) {
	rows, err := r.queries.LockStocksByProductIDs(ctx, tx, productIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock stocks", err)
	}
	out := make(map[int64]*stock.Stock, len(rows))
	for _, row := range rows {
		out[row.ProductID] = converter.StockFromRow(row)
	}
	return out, nil
}

func (r *StockRepository) Save(ctx context.Context, tx sqlc.DBTX, s *stock.Stock) error {
	if err := r.queries.UpdateStockQuantities(ctx, tx, converter.StockToUpdateParams(s)); err != nil {
		return infra.WrapRepoErr("failed to update stock", err)
	}
	return nil
}

func (r *StockRepository) RecordReservation(ctx context.Context, tx sqlc.DBTX, orderID int64, items []stock.ReservationItem) (bool, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode reservation items", err, infra.KindDBFailure)
	}
	n, err := r.queries.InsertStockReservation(ctx, tx, sqlc.InsertStockReservationParams{
		OrderID: orderID,
		Items:   payload,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to record stock reservation", err)
	}
	return n == 1, nil
}
