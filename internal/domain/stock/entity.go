package stock

import (
	"fmt"

	"order-saga/internal/pkg/errs"
)

var (
	ErrStockNotFound           = errs.New("stock not found")
	ErrStockAlreadyExists      = errs.New("stock already exists")
	ErrInvalidProductID        = errs.New("invalid product id")
	ErrInvalidQuantity         = errs.New("quantity must be positive")
	ErrNegativeAvailable       = errs.New("available quantity must not be negative")
	ErrQuantityWouldGoNegative = errs.New("quantity change would make available stock negative")
	ErrBelowReserved           = errs.New("available stock cannot drop below reserved stock")
	ErrInsufficientStock       = errs.New("insufficient stock")
)

// InsufficientStockError names the first product that could not be satisfied.
// It matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	ProductID int64
	Requested int32
	Sellable  int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, sellable %d", e.ProductID, e.Requested, e.Sellable)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Stock is the ledger record of one product. Invariant: 0 <= reserved <= available.
type Stock struct {
	productID int64
	available int32
	reserved  int32
}

func NewStock(productID int64, available int32) (*Stock, error) {
	if productID <= 0 {
		return nil, ErrInvalidProductID
	}
	if available < 0 {
		return nil, ErrNegativeAvailable
	}
	return &Stock{productID: productID, available: available}, nil
}

func ReconstructStock(productID int64, available, reserved int32) *Stock {
	return &Stock{productID: productID, available: available, reserved: reserved}
}

func (s *Stock) ProductID() int64 { return s.productID }
func (s *Stock) Available() int32 { return s.available }
func (s *Stock) Reserved() int32  { return s.reserved }

func (s *Stock) Sellable() int32 {
	return s.available - s.reserved
}

// AdjustAvailable applies an administrative correction to the physical count.
// Reserved stock is left untouched.
func (s *Stock) AdjustAvailable(delta int32) error {
	next := int64(s.available) + int64(delta)
	if next < 0 {
		return ErrQuantityWouldGoNegative
	}
	if next < int64(s.reserved) {
		return ErrBelowReserved
	}
	s.available = int32(next)
	return nil
}

func (s *Stock) CanReserve(qty int32) bool {
	return qty > 0 && s.Sellable() >= qty
}

func (s *Stock) Reserve(qty int32) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if s.Sellable() < qty {
		return &InsufficientStockError{ProductID: s.productID, Requested: qty, Sellable: s.Sellable()}
	}
	s.reserved += qty
	return nil
}
