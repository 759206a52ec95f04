package request

import (
	"strconv"
	"strings"

	"order-saga/internal/pkg/errs"
)

var ErrInvalidProductIDs = errs.New("productIds must be a comma separated list of ids")

type CreateStockRequest struct {
	AvailableQuantity *int32 `json:"availableQuantity" binding:"required,min=0"`
}

type AdjustStockRequest struct {
	QuantityChange *int32 `json:"quantityChange" binding:"required"`
}

type ReserveStockRequest struct {
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}

// ParseProductIDs reads "1,2,3". Duplicates are kept; the query layer removes them.
func ParseProductIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrInvalidProductIDs
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrInvalidProductIDs
	}
	return ids, nil
}
