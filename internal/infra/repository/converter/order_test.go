//go:build unit

package converter_test

import (
	"testing"
	"time"

	"order-saga/internal/domain/order"
	"order-saga/internal/infra/repository/converter"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, owner order.OwnerRef, now time.Time) *order.Order {
	t.Helper()
	item, err := order.NewItem(1, "Keyboard", decimal.RequireFromString("49.90"), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(owner, order.ShippingInfo{Email: "jane@example.com", Country: "Poland"}, []order.Item{item}, now)
	require.NoError(t, err)
	return o
}

func TestOrderToCreateParams(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 987654321, time.UTC)

	t.Run("timestamps come from the aggregate", func(t *testing.T) {
		owner, err := order.NewUserOwner(9)
		require.NoError(t, err)
		o := newOrder(t, owner, now)

		p := converter.OrderToCreateParams(o)

		require.True(t, p.CreatedAt.Valid)
		require.True(t, p.UpdatedAt.Valid)
		assert.True(t, p.CreatedAt.Time.Equal(o.CreatedAt()))
		assert.True(t, p.UpdatedAt.Time.Equal(o.UpdatedAt()))
		assert.Equal(t, pgtype.Int8{Int64: 9, Valid: true}, p.UserID)
		assert.False(t, p.SessionID.Valid)
		assert.Equal(t, "CREATED", p.Status)
		assert.Equal(t, "99.8", p.TotalAmount.String())
	})

	t.Run("session owner", func(t *testing.T) {
		owner, err := order.NewSessionOwner("sess-1")
		require.NoError(t, err)

		p := converter.OrderToCreateParams(newOrder(t, owner, now))

		assert.False(t, p.UserID.Valid)
		assert.Equal(t, pgtype.Text{String: "sess-1", Valid: true}, p.SessionID)
	})
}

func TestOrderFromRows(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	row := sqlc.Order{
		ID:          4,
		SessionID:   pgtype.Text{String: "sess-1", Valid: true},
		Email:       "jane@example.com",
		TotalAmount: decimal.RequireFromString("99.80"),
		Status:      "CANCELLED",
		CreatedAt:   pgtype.Timestamptz{Time: created, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: created.Add(time.Minute), Valid: true},
	}
	items := []sqlc.OrderItem{{OrderID: 4, LineNo: 1, ProductID: 1, Name: "Keyboard", UnitPrice: decimal.RequireFromString("49.90"), Quantity: 2}}

	t.Run("success", func(t *testing.T) {
		o, err := converter.OrderFromRows(row, items)

		require.NoError(t, err)
		assert.Equal(t, int64(4), o.ID())
		assert.Equal(t, "session:sess-1", o.Owner().String())
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.Equal(t, created.Add(time.Minute), o.UpdatedAt())
		assert.NoError(t, o.VerifyTotal())
	})

	t.Run("row without an owner", func(t *testing.T) {
		bad := row
		bad.SessionID = pgtype.Text{}

		_, err := converter.OrderFromRows(bad, items)

		assert.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		bad := row
		bad.Status = "LOST"

		_, err := converter.OrderFromRows(bad, items)

		assert.True(t, errs.Is(err, order.ErrInvalidStatus))
	})
}
