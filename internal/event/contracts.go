// Package event holds the asynchronous message contracts exchanged by the order, stock and
// notifier services. Every message is JSON encoded and keyed by its order id.
package event

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Type names travel in the event-type header and in the outbox table.
const (
	TypeOrderCreated           = "OrderCreated"
	TypeOrderCancelled         = "OrderCancelled"
	TypeStockReserveRequested  = "StockReserveRequested"
	TypeStockReservationFailed = "StockReservationFailed"
)

// Topics names the bus channels. Retry and dead-letter topics derive from StockReserveRequested.
type Topics struct {
	OrderCreated           string
	OrderCancelled         string
	StockReserveRequested  string
	StockReservationFailed string
}

type LineItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderCreated carries exactly one of UserID or SessionID.
type OrderCreated struct {
	OrderID     int64           `json:"orderId"`
	UserID      *int64          `json:"userId,omitempty"`
	SessionID   *string         `json:"sessionId,omitempty"`
	Email       string          `json:"email"`
	FirstName   string          `json:"firstName,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []LineItem      `json:"items"`
}

type ReserveItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type StockReserveRequested struct {
	OrderID int64         `json:"orderId"`
	Items   []ReserveItem `json:"items"`
}

type StockReservationFailed struct {
	OrderID int64  `json:"orderId"`
	Reason  string `json:"reason"`
}

type OrderCancelled struct {
	OrderID int64  `json:"orderId"`
	Email   string `json:"email"`
	Reason  string `json:"reason"`
}

// Message is an encoded event ready for the outbox or the bus.
type Message struct {
	Type    string
	Key     string
	Payload []byte
}

func Key(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}

func Encode(eventType string, orderID int64, v any) (Message, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: eventType, Key: Key(orderID), Payload: b}, nil
}

func Decode[T any](payload []byte) (T, error) {
	var v T
	err := json.Unmarshal(payload, &v)
	return v, err
}
