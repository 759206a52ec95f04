package response

import (
	"order-saga/internal/domain/stock"
	"order-saga/internal/usecase/queries"
)

type StockResponse struct {
	ProductID         int64 `json:"productId"`
	AvailableQuantity int32 `json:"availableQuantity"`
	ReservedQuantity  int32 `json:"reservedQuantity"`
	SellableQuantity  int32 `json:"sellableQuantity"`
}

func FromStockView(v *queries.StockView) *StockResponse {
	return &StockResponse{
		ProductID:         v.ProductID,
		AvailableQuantity: v.Available,
		ReservedQuantity:  v.Reserved,
		SellableQuantity:  v.Sellable,
	}
}

func FromStock(s *stock.Stock) *StockResponse {
	return &StockResponse{
		ProductID:         s.ProductID(),
		AvailableQuantity: s.Available(),
		ReservedQuantity:  s.Reserved(),
		SellableQuantity:  s.Sellable(),
	}
}

// FromStockBatch keys the batch by product id, as the order service's stock client expects.
func FromStockBatch(views map[int64]*queries.StockView) map[int64]*StockResponse {
	out := make(map[int64]*StockResponse, len(views))
	for id, v := range views {
		out[id] = FromStockView(v)
	}
	return out
}
