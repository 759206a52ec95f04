//go:build unit

package event_test

import (
	"encoding/json"
	"testing"

	"order-saga/internal/event"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_OrderCreated(t *testing.T) {
	userID := int64(42)
	in := event.OrderCreated{
		OrderID:     17,
		UserID:      &userID,
		Email:       "jane@example.com",
		FirstName:   "Jane",
		TotalAmount: decimal.RequireFromString("119.79"),
		Items: []event.LineItem{
			{ProductID: 1, Name: "Keyboard", Quantity: 2, UnitPrice: decimal.RequireFromString("49.90")},
			{ProductID: 7, Name: "Mouse", Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
		},
	}

	msg, err := event.Encode(event.TypeOrderCreated, in.OrderID, in)
	require.NoError(t, err)

	assert.Equal(t, event.TypeOrderCreated, msg.Type)
	assert.Equal(t, "17", msg.Key)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(msg.Payload, &raw))
	assert.JSONEq(t, `"119.79"`, string(raw["totalAmount"]), "amounts travel as exact decimal strings")
	assert.NotContains(t, raw, "sessionId")

	out, err := event.Decode[event.OrderCreated](msg.Payload)
	require.NoError(t, err)
	assert.True(t, in.TotalAmount.Equal(out.TotalAmount), "total %s", out.TotalAmount)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.RequireFromString("49.9")))
	assert.Equal(t, "Mouse", out.Items[1].Name)
	require.NotNil(t, out.UserID)
	assert.Equal(t, userID, *out.UserID)
	assert.Nil(t, out.SessionID)
}

func TestDecode_NumericTotalAmount(t *testing.T) {
	out, err := event.Decode[event.OrderCreated]([]byte(`{"orderId":3,"email":"a@b.co","totalAmount":0.30,"items":[]}`))

	require.NoError(t, err)
	assert.Equal(t, "0.3", out.TotalAmount.String())
}

func TestEncodeDecode_SagaMessages(t *testing.T) {
	t.Run("stock reserve requested", func(t *testing.T) {
		in := event.StockReserveRequested{OrderID: 5, Items: []event.ReserveItem{{ProductID: 2, Quantity: 3}}}

		msg, err := event.Encode(event.TypeStockReserveRequested, 5, in)
		require.NoError(t, err)
		out, err := event.Decode[event.StockReserveRequested](msg.Payload)

		require.NoError(t, err)
		assert.Equal(t, in, out)
		assert.JSONEq(t, `{"orderId":5,"items":[{"productId":2,"quantity":3}]}`, string(msg.Payload))
	})

	t.Run("stock reservation failed", func(t *testing.T) {
		in := event.StockReservationFailed{OrderID: 5, Reason: "insufficient stock for product 2"}

		msg, err := event.Encode(event.TypeStockReservationFailed, 5, in)
		require.NoError(t, err)
		out, err := event.Decode[event.StockReservationFailed](msg.Payload)

		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestDecode_Malformed(t *testing.T) {
	_, err := event.Decode[event.StockReserveRequested]([]byte(`{"orderId":"not-a-number"}`))
	assert.Error(t, err)

	_, err = event.Decode[event.OrderCreated]([]byte(`{"totalAmount":"12,50"}`))
	assert.Error(t, err)
}
