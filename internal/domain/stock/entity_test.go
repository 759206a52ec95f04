//go:build unit

package stock_test

import (
	"testing"

	"order-saga/internal/domain/stock"
	"order-saga/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStock(t *testing.T) {
	testCases := []struct {
		name        string
		productID   int64
		available   int32
		expectedErr error
	}{
		{name: "success", productID: 1, available: 10},
		{name: "success: empty shelf", productID: 1, available: 0},
		{name: "error: zero product id", productID: 0, available: 1, expectedErr: stock.ErrInvalidProductID},
		{name: "error: negative available", productID: 1, available: -1, expectedErr: stock.ErrNegativeAvailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := stock.NewStock(tc.productID, tc.available)

			if tc.expectedErr != nil {
				assert.True(t, errs.Is(err, tc.expectedErr), "expected [%v] but got [%v]", tc.expectedErr, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.available, s.Available())
			assert.Zero(t, s.Reserved())
		})
	}
}

func TestStock_AdjustAvailable(t *testing.T) {
	testCases := []struct {
		name          string
		available     int32
		reserved      int32
		delta         int32
		expectedErr   error
		wantAvailable int32
	}{
		{name: "success: restock", available: 5, reserved: 2, delta: 10, wantAvailable: 15},
		{name: "success: shrink down to reserved", available: 10, reserved: 4, delta: -6, wantAvailable: 4},
		{name: "success: zero change", available: 3, reserved: 3, delta: 0, wantAvailable: 3},
		{name: "error: below reserved", available: 10, reserved: 4, delta: -7, expectedErr: stock.ErrBelowReserved},
		{name: "error: negative available", available: 10, reserved: 4, delta: -11, expectedErr: stock.ErrQuantityWouldGoNegative},
		{name: "error: negative with nothing reserved", available: 2, reserved: 0, delta: -3, expectedErr: stock.ErrQuantityWouldGoNegative},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := stock.ReconstructStock(1, tc.available, tc.reserved)

			err := s.AdjustAvailable(tc.delta)

			assert.Equal(t, tc.reserved, s.Reserved(), "reserved is never touched by an adjustment")
			if tc.expectedErr != nil {
				assert.True(t, errs.Is(err, tc.expectedErr), "expected [%v] but got [%v]", tc.expectedErr, err)
				assert.Equal(t, tc.available, s.Available())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAvailable, s.Available())
			assert.Equal(t, tc.wantAvailable-tc.reserved, s.Sellable())
		})
	}
}

func TestStock_Reserve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := stock.ReconstructStock(1, 10, 3)

		require.NoError(t, s.Reserve(7))

		assert.Equal(t, int32(10), s.Reserved())
		assert.Zero(t, s.Sellable())
	})

	t.Run("insufficient sellable quantity", func(t *testing.T) {
		s := stock.ReconstructStock(9, 10, 3)

		err := s.Reserve(8)

		var insufficient *stock.InsufficientStockError
		require.True(t, errs.As(err, &insufficient))
		assert.Equal(t, stock.InsufficientStockError{ProductID: 9, Requested: 8, Sellable: 7}, *insufficient)
		assert.True(t, errs.Is(err, stock.ErrInsufficientStock))
		assert.Equal(t, int32(3), s.Reserved())
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		s := stock.ReconstructStock(1, 10, 0)

		assert.True(t, errs.Is(s.Reserve(0), stock.ErrInvalidQuantity))
		assert.False(t, s.CanReserve(0))
	})
}
