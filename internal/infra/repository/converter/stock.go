package converter

import (
	"order-saga/internal/domain/stock"
	"order-saga/internal/infra/sqlc"
)

func StockFromRow(row sqlc.Stock) *stock.Stock {
	return stock.ReconstructStock(row.ProductID, row.AvailableQuantity, row.ReservedQuantity)
}

func StockToUpdateParams(s *stock.Stock) sqlc.UpdateStockQuantitiesParams {
	return sqlc.UpdateStockQuantitiesParams{
		ProductID:         s.ProductID(),
		AvailableQuantity: s.Available(),
		ReservedQuantity:  s.Reserved(),
	}
}
