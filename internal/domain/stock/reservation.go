package stock

import (
	"sort"

	"order-saga/internal/pkg/errs"
)

var ErrEmptyReservation = errs.New("reservation must contain at least one item")

type ReservationItem struct {
	ProductID int64
	Quantity  int32
}

// MergeItems folds duplicate product ids into one line and returns the lines sorted
// by product id, the order in which the ledger takes its row locks.
func MergeItems(items []ReservationItem) ([]ReservationItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyReservation
	}

	totals := make(map[int64]int64, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return nil, ErrInvalidProductID
		}
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		totals[it.ProductID] += int64(it.Quantity)
	}

	merged := make([]ReservationItem, 0, len(totals))
	for id, qty := range totals {
		if qty > int64(^uint32(0)>>1) {
			return nil, ErrInvalidQuantity
		}
		merged = append(merged, ReservationItem{ProductID: id, Quantity: int32(qty)})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID < merged[j].ProductID })
	return merged, nil
}

func ProductIDs(items []ReservationItem) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	return ids
}

// ReserveAll validates every line against the given records before applying any of them.
// A product without a record counts as zero availability. The first failing line, in
// product id order, is reported.
func ReserveAll(records map[int64]*Stock, items []ReservationItem) error {
	for _, it := range items {
		rec, ok := records[it.ProductID]
		if !ok {
			return &InsufficientStockError{ProductID: it.ProductID, Requested: it.Quantity, Sellable: 0}
		}
		if !rec.CanReserve(it.Quantity) {
			return &InsufficientStockError{ProductID: it.ProductID, Requested: it.Quantity, Sellable: rec.Sellable()}
		}
	}
	for _, it := range items {
		if err := records[it.ProductID].Reserve(it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
