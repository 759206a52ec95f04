package queries

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView represents read-optimized order data with its line items
type OrderView struct {
	ID          int64
	UserID      *int64
	SessionID   *string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Street      string
	HouseNumber string
	City        string
	ZipCode     string
	Country     string
	TotalAmount decimal.Decimal
	Status      string
	Items       []OrderItemView
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItemView struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

// StockView exposes the ledger counters; Sellable is what callers may reserve.
type StockView struct {
	ProductID int64
	Available int32
	Reserved  int32
	Sellable  int32
	UpdatedAt time.Time
}
