package queries

//go:generate mockgen -source=stock.go -destination=../../../tests/mock/queries/stock.go -package=queriesmock

import (
	"context"

	"order-saga/internal/domain/stock"
	"order-saga/internal/infra"
	"order-saga/internal/pkg/errs"
)

const MaxBatchSize = 200

var ErrBatchTooLarge = errs.New("too many product ids")

type StockReadStore interface {
	FindByProductID(ctx context.Context, productID int64) (*StockView, error)
	FindByProductIDs(ctx context.Context, productIDs []int64) ([]*StockView, error)
}

type StockQueries interface {
	GetByProduct(ctx context.Context, productID int64) (*StockView, error)
	// GetBatch returns the records that exist; unknown ids are absent and count as zero availability.
	GetBatch(ctx context.Context, productIDs []int64) (map[int64]*StockView, error)
}

type stockQueriesImpl struct {
	repo StockReadStore
}

func NewStockQueries(repo StockReadStore) StockQueries {
	return &stockQueriesImpl{repo: repo}
}

func (q *stockQueriesImpl) GetByProduct(ctx context.Context, productID int64) (*StockView, error) {
	if productID <= 0 {
		return nil, stock.ErrInvalidProductID
	}
	v, err := q.repo.FindByProductID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, stock.ErrStockNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *stockQueriesImpl) GetBatch(ctx context.Context, productIDs []int64) (map[int64]*StockView, error) {
	out := make(map[int64]*StockView, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	if len(productIDs) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}
	for _, id := range productIDs {
		if id <= 0 {
			return nil, stock.ErrInvalidProductID
		}
	}

	rows, err := q.repo.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, v := range rows {
		out[v.ProductID] = v
	}
	return out, nil
}
