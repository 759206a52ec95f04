package commands

import (
	"context"

	"order-saga/internal/domain/order"

	"github.com/shopspring/decimal"
)

// CartLine is the cart service's view of one line. AvailableQuantity is the catalog's
// advertised stock, used only for the early pre-check.
type CartLine struct {
	ProductID         int64
	Name              string
	Quantity          int32
	UnitPrice         decimal.Decimal
	AvailableQuantity int32
}

type Cart struct {
	Lines []CartLine
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// CartClient is the synchronous boundary to the cart service.
type CartClient interface {
	// Get returns an empty cart when the owner has none.
	Get(ctx context.Context, owner order.OwnerRef) (*Cart, error)
	// Clear treats an already empty cart as success.
	Clear(ctx context.Context, owner order.OwnerRef) error
}
