package readstore

import (
	"context"

	"order-saga/internal/infra"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/pgconv"
	"order-saga/internal/usecase/queries"
)

type StockReadQueries interface {
	GetStockByProductID(ctx context.Context, db sqlc.DBTX, productID int64) (sqlc.Stock, error)
	GetStocksByProductIDs(ctx context.Context, db sqlc.DBTX, productIds []int64) ([]sqlc.Stock, error)
}

type StockReadStore struct {
	queries StockReadQueries
	db      sqlc.DBTX
}

func NewStockReadStore(queries StockReadQueries, db sqlc.DBTX) *StockReadStore {
	return &StockReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *StockReadStore) FindByProductID(ctx context.Context, productID int64) (*queries.StockView, error) {
	row, err := r.queries.GetStockByProductID(ctx, r.db, productID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("stock not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get stock by product id", err)
	}
	return toStockView(row), nil
}

func (r *StockReadStore) FindByProductIDs(ctx context.Context, productIDs []int64) ([]*queries.StockView, error) {
	rows, err := r.queries.GetStocksByProductIDs(ctx, r.db, productIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get stocks by product ids", err)
	}
	views := make([]*queries.StockView, len(rows))
	for i, row := range rows {
		views[i] = toStockView(row)
	}
	return views, nil
}

func toStockView(row sqlc.Stock) *queries.StockView {
	return &queries.StockView{
		ProductID: row.ProductID,
		Available: row.AvailableQuantity,
		Reserved:  row.ReservedQuantity,
		Sellable:  row.AvailableQuantity - row.ReservedQuantity,
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
