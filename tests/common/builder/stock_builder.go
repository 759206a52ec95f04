//go:build unit || e2e

package builder

import (
	"order-saga/internal/domain/stock"
	"order-saga/internal/usecase/queries"
)

type StockBuilder struct {
	ProductID int64
	Available int32
	Reserved  int32
}

func NewStockBuilder() *StockBuilder {
	return &StockBuilder{ProductID: 1, Available: 10}
}

func (b *StockBuilder) With(mutate func(*StockBuilder)) *StockBuilder {
	mutate(b)
	return b
}

func (b *StockBuilder) BuildDomain() *stock.Stock {
	return stock.ReconstructStock(b.ProductID, b.Available, b.Reserved)
}

func (b *StockBuilder) BuildView() *queries.StockView {
	return &queries.StockView{
		ProductID: b.ProductID,
		Available: b.Available,
		Reserved:  b.Reserved,
		Sellable:  b.Available - b.Reserved,
	}
}
