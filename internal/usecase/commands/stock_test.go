//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"

	"order-saga/internal/domain/stock"
	"order-saga/internal/event"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockCommands(uow *memUoW) commands.StockCommands {
	return commands.NewStockCommands(uow, testTopics, discardLogger())
}

func assertLedger(t *testing.T, uow *memUoW, productID int64, available, reserved int32) {
	t.Helper()
	s := uow.stockOf(productID)
	require.NotNil(t, s, "stock %d missing", productID)
	assert.Equal(t, available, s.Available(), "available of %d", productID)
	assert.Equal(t, reserved, s.Reserved(), "reserved of %d", productID)
}

// =============================================================================
// ReserveBatch Tests
// =============================================================================

func TestStockCommands_ReserveBatch(t *testing.T) {
	ctx := context.Background()

	type ledger struct {
		productID           int64
		available, reserved int32
	}

	testCases := []struct {
		name        string
		seed        []ledger
		items       []stock.ReservationItem
		expectedErr error
		failingID   int64
		want        []ledger
	}{
		{
			name:  "success: exact sellable quantity",
			seed:  []ledger{{1, 3, 0}},
			items: []stock.ReservationItem{{ProductID: 1, Quantity: 3}},
			want:  []ledger{{1, 3, 3}},
		},
		{
			name:  "success: duplicate lines are merged",
			seed:  []ledger{{1, 10, 2}, {2, 5, 0}},
			items: []stock.ReservationItem{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 4}},
			want:  []ledger{{1, 10, 5}, {2, 5, 5}},
		},
		{
			name:        "error: later item fails and nothing is applied",
			seed:        []ledger{{1, 10, 0}, {2, 1, 0}},
			items:       []stock.ReservationItem{{ProductID: 1, Quantity: 4}, {ProductID: 2, Quantity: 2}},
			expectedErr: stock.ErrInsufficientStock,
			failingID:   2,
			want:        []ledger{{1, 10, 0}, {2, 1, 0}},
		},
		{
			name:        "error: unknown product counts as zero availability",
			seed:        []ledger{{1, 10, 0}},
			items:       []stock.ReservationItem{{ProductID: 1, Quantity: 1}, {ProductID: 404, Quantity: 1}},
			expectedErr: stock.ErrInsufficientStock,
			failingID:   404,
			want:        []ledger{{1, 10, 0}},
		},
		{
			name:        "error: already reserved stock is not sellable",
			seed:        []ledger{{1, 5, 4}},
			items:       []stock.ReservationItem{{ProductID: 1, Quantity: 2}},
			expectedErr: stock.ErrInsufficientStock,
			failingID:   1,
			want:        []ledger{{1, 5, 4}},
		},
		{
			name:        "error: empty request",
			seed:        []ledger{{1, 5, 0}},
			items:       nil,
			expectedErr: stock.ErrEmptyReservation,
			want:        []ledger{{1, 5, 0}},
		},
		{
			name:        "error: non-positive quantity",
			seed:        []ledger{{1, 5, 0}},
			items:       []stock.ReservationItem{{ProductID: 1, Quantity: 0}},
			expectedErr: stock.ErrInvalidQuantity,
			want:        []ledger{{1, 5, 0}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uow := newMemUoW()
			for _, l := range tc.seed {
				uow.seedStock(l.productID, l.available, l.reserved)
			}
			cmd := newStockCommands(uow)

			err := cmd.ReserveBatch(ctx, 7, tc.items)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectedErr), "expected [%v] but got [%v]", tc.expectedErr, err)
				if tc.failingID != 0 {
					var insufficient *stock.InsufficientStockError
					require.True(t, errs.As(err, &insufficient))
					assert.Equal(t, tc.failingID, insufficient.ProductID)
				}
			} else {
				require.NoError(t, err)
			}
			for _, l := range tc.want {
				assertLedger(t, uow, l.productID, l.available, l.reserved)
			}
			assert.Empty(t, uow.outboxRows(), "the ledger emits no messages")
		})
	}
}

func TestStockCommands_ReserveBatch_RedeliveryIsNoOp(t *testing.T) {
	ctx := context.Background()
	uow := newMemUoW()
	uow.seedStock(1, 10, 0)
	cmd := newStockCommands(uow)
	items := []stock.ReservationItem{{ProductID: 1, Quantity: 3}}

	require.NoError(t, cmd.ReserveBatch(ctx, 7, items))
	require.NoError(t, cmd.ReserveBatch(ctx, 7, items))

	assertLedger(t, uow, 1, 10, 3)
}

func TestStockCommands_ReserveBatch_FailureDoesNotConsumeOrder(t *testing.T) {
	ctx := context.Background()
	uow := newMemUoW()
	uow.seedStock(1, 2, 0)
	cmd := newStockCommands(uow)
	items := []stock.ReservationItem{{ProductID: 1, Quantity: 3}}

	require.Error(t, cmd.ReserveBatch(ctx, 7, items))

	// capacity arrives before the retry
	_, err := cmd.AdjustAvailable(ctx, 1, 1)
	require.NoError(t, err)
	require.NoError(t, cmd.ReserveBatch(ctx, 7, items))

	assertLedger(t, uow, 1, 3, 3)
}

func TestStockCommands_ReserveBatch_ConcurrentOrdersNeverOversell(t *testing.T) {
	ctx := context.Background()
	uow := newMemUoW()
	uow.seedStock(1, 10, 0)
	uow.seedStock(2, 10, 0)
	cmd := newStockCommands(uow)

	const orders = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 1; i <= orders; i++ {
		wg.Add(1)
		go func(orderID int64) {
			defer wg.Done()
			err := cmd.ReserveBatch(ctx, orderID, []stock.ReservationItem{
				{ProductID: 2, Quantity: 1},
				{ProductID: 1, Quantity: 1},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assertLedger(t, uow, 1, 10, 10)
	assertLedger(t, uow, 2, 10, 10)
}

// =============================================================================
// Single record operations
// =============================================================================

func TestStockCommands_ReserveOne(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		productID   int64
		qty         int32
		expectedErr error
		wantRes     int32
	}{
		{name: "success", productID: 1, qty: 2, wantRes: 3},
		{name: "error: insufficient", productID: 1, qty: 5, expectedErr: stock.ErrInsufficientStock, wantRes: 1},
		{name: "error: not found", productID: 2, qty: 1, expectedErr: stock.ErrStockNotFound, wantRes: 1},
		{name: "error: zero quantity", productID: 1, qty: 0, expectedErr: stock.ErrInvalidQuantity, wantRes: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uow := newMemUoW()
			uow.seedStock(1, 5, 1)

			got, err := newStockCommands(uow).ReserveOne(ctx, tc.productID, tc.qty)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectedErr), "expected [%v] but got [%v]", tc.expectedErr, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantRes, got.Reserved())
			}
			assertLedger(t, uow, 1, 5, tc.wantRes)
		})
	}
}

func TestStockCommands_AdjustAvailable(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		delta         int32
		expectedErr   error
		wantAvailable int32
	}{
		{name: "success: restock", delta: 5, wantAvailable: 15},
		{name: "success: shrink down to reserved", delta: -6, wantAvailable: 4},
		{name: "error: below zero", delta: -11, expectedErr: stock.ErrQuantityWouldGoNegative, wantAvailable: 10},
		{name: "error: below reserved", delta: -7, expectedErr: stock.ErrBelowReserved, wantAvailable: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uow := newMemUoW()
			uow.seedStock(1, 10, 4)

			_, err := newStockCommands(uow).AdjustAvailable(ctx, 1, tc.delta)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectedErr), "expected [%v] but got [%v]", tc.expectedErr, err)
			} else {
				require.NoError(t, err)
			}
			assertLedger(t, uow, 1, tc.wantAvailable, 4)
		})
	}
}

func TestStockCommands_CreateStock(t *testing.T) {
	ctx := context.Background()
	uow := newMemUoW()
	cmd := newStockCommands(uow)

	created, err := cmd.CreateStock(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, int32(8), created.Sellable())

	_, err = cmd.CreateStock(ctx, 1, 3)
	assert.True(t, errs.Is(err, stock.ErrStockAlreadyExists))

	_, err = cmd.CreateStock(ctx, 2, -1)
	assert.True(t, errs.Is(err, stock.ErrNegativeAvailable))
	assertLedger(t, uow, 1, 8, 0)
}

func TestStockCommands_PublishReservationFailed(t *testing.T) {
	ctx := context.Background()
	uow := newMemUoW()

	require.NoError(t, newStockCommands(uow).PublishReservationFailed(ctx, 7, "insufficient stock for product 1"))

	rows := uow.outboxRows()
	require.Len(t, rows, 1)
	assert.Equal(t, testTopics.StockReservationFailed, rows[0].topic)
	assert.Equal(t, "7", rows[0].msg.Key)
	ev, err := event.Decode[event.StockReservationFailed](rows[0].msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, event.StockReservationFailed{OrderID: 7, Reason: "insufficient stock for product 1"}, ev)
}
