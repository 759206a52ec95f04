//go:build unit

package stock_test

import (
	"math"
	"testing"

	"order-saga/internal/domain/stock"
	"order-saga/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeItems(t *testing.T) {
	testCases := []struct {
		name        string
		items       []stock.ReservationItem
		want        []stock.ReservationItem
		expectedErr error
	}{
		{
			name:  "success: sorted by product id",
			items: []stock.ReservationItem{{ProductID: 9, Quantity: 1}, {ProductID: 2, Quantity: 4}, {ProductID: 5, Quantity: 2}},
			want:  []stock.ReservationItem{{ProductID: 2, Quantity: 4}, {ProductID: 5, Quantity: 2}, {ProductID: 9, Quantity: 1}},
		},
		{
			name:  "success: duplicates are summed",
			items: []stock.ReservationItem{{ProductID: 3, Quantity: 2}, {ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 5}},
			want:  []stock.ReservationItem{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 7}},
		},
		{
			name:  "success: duplicates summing exactly to the int32 maximum",
			items: []stock.ReservationItem{{ProductID: 1, Quantity: math.MaxInt32 - 1}, {ProductID: 1, Quantity: 1}},
			want:  []stock.ReservationItem{{ProductID: 1, Quantity: math.MaxInt32}},
		},
		{
			name:        "error: duplicates overflow int32",
			items:       []stock.ReservationItem{{ProductID: 1, Quantity: math.MaxInt32}, {ProductID: 1, Quantity: 1}},
			expectedErr: stock.ErrInvalidQuantity,
		},
		{name: "error: empty", items: nil, expectedErr: stock.ErrEmptyReservation},
		{
			name:        "error: zero quantity",
			items:       []stock.ReservationItem{{ProductID: 1, Quantity: 0}},
			expectedErr: stock.ErrInvalidQuantity,
		},
		{
			name:        "error: invalid product id",
			items:       []stock.ReservationItem{{ProductID: -4, Quantity: 1}},
			expectedErr: stock.ErrInvalidProductID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := stock.MergeItems(tc.items)

			if tc.expectedErr != nil {
				assert.True(t, errs.Is(err, tc.expectedErr), "expected [%v] but got [%v]", tc.expectedErr, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, productIDs(tc.want), stock.ProductIDs(got))
		})
	}
}

func productIDs(items []stock.ReservationItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}

func TestReserveAll(t *testing.T) {
	newRecords := func() map[int64]*stock.Stock {
		return map[int64]*stock.Stock{
			1: stock.ReconstructStock(1, 10, 2),
			2: stock.ReconstructStock(2, 5, 0),
			3: stock.ReconstructStock(3, 1, 1),
		}
	}

	testCases := []struct {
		name         string
		items        []stock.ReservationItem
		wantFailure  *stock.InsufficientStockError
		wantReserved map[int64]int32
	}{
		{
			name:         "success: every line applied",
			items:        []stock.ReservationItem{{ProductID: 1, Quantity: 8}, {ProductID: 2, Quantity: 5}},
			wantReserved: map[int64]int32{1: 10, 2: 5, 3: 1},
		},
		{
			name:         "missing record counts as zero and nothing is applied",
			items:        []stock.ReservationItem{{ProductID: 1, Quantity: 1}, {ProductID: 4, Quantity: 1}},
			wantFailure:  &stock.InsufficientStockError{ProductID: 4, Requested: 1, Sellable: 0},
			wantReserved: map[int64]int32{1: 2, 2: 0, 3: 1},
		},
		{
			name:         "a later short line leaves earlier lines unreserved",
			items:        []stock.ReservationItem{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 6}},
			wantFailure:  &stock.InsufficientStockError{ProductID: 2, Requested: 6, Sellable: 5},
			wantReserved: map[int64]int32{1: 2, 2: 0, 3: 1},
		},
		{
			name:         "first failing line is reported",
			items:        []stock.ReservationItem{{ProductID: 2, Quantity: 9}, {ProductID: 3, Quantity: 1}},
			wantFailure:  &stock.InsufficientStockError{ProductID: 2, Requested: 9, Sellable: 5},
			wantReserved: map[int64]int32{1: 2, 2: 0, 3: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := newRecords()

			err := stock.ReserveAll(records, tc.items)

			if tc.wantFailure != nil {
				var insufficient *stock.InsufficientStockError
				require.True(t, errs.As(err, &insufficient), "got %v", err)
				assert.Equal(t, *tc.wantFailure, *insufficient)
			} else {
				require.NoError(t, err)
			}
			for id, want := range tc.wantReserved {
				assert.Equal(t, want, records[id].Reserved(), "product %d", id)
			}
		})
	}
}
