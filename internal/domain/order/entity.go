package order

import (
	"time"

	"order-saga/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound  = errs.New("order not found")
	ErrEmptyOrder     = errs.New("order must contain at least one item")
	ErrNotCancellable = errs.New("order cannot be cancelled in its current status")
	ErrInvalidStatus  = errs.New("invalid order status")
	ErrOwnerRequired  = errs.New("order owner is required")
	ErrInvalidOrderID = errs.New("invalid order id")
	ErrTotalMismatch  = errs.New("order total does not match its items")
)

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusCancelled Status = "CANCELLED"
	// Fulfillment states are written by processes outside the saga.
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusCreated, StatusCancelled, StatusPaid, StatusShipped, StatusDelivered:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// Cancellable reports whether the saga or the owner may still cancel the order.
func (s Status) Cancellable() bool { return s == StatusCreated }

type Order struct {
	id        int64
	owner     OwnerRef
	shipping  ShippingInfo
	items     []Item
	total     decimal.Decimal
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder builds an order in status CREATED. The total is computed here from the item
// snapshots and is never recalculated afterwards.
func NewOrder(owner OwnerRef, shipping ShippingInfo, items []Item, now time.Time) (*Order, error) {
	if !owner.IsValid() {
		return nil, ErrOwnerRequired
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}

	copied := make([]Item, len(items))
	copy(copied, items)
	now = storedTime(now)

	return &Order{
		owner:     owner,
		shipping:  shipping,
		items:     copied,
		total:     total,
		status:    StatusCreated,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructOrder(
	id int64,
	owner OwnerRef,
	shipping ShippingInfo,
	items []Item,
	total decimal.Decimal,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:        id,
		owner:     owner,
		shipping:  shipping,
		items:     items,
		total:     total,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (o *Order) ID() int64              { return o.id }
func (o *Order) Owner() OwnerRef        { return o.owner }
func (o *Order) Shipping() ShippingInfo { return o.shipping }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) Status() Status         { return o.status }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) UpdatedAt() time.Time   { return o.updatedAt }

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// AssignID is called once by persistence after the insert returns the generated key.
func (o *Order) AssignID(id int64) error {
	if id <= 0 || o.id != 0 {
		return ErrInvalidOrderID
	}
	o.id = id
	return nil
}

func (o *Order) OwnedBy(owner OwnerRef) bool {
	return o.owner == owner
}

// Cancel moves CREATED to CANCELLED. Every other status rejects the transition.
func (o *Order) Cancel(now time.Time) error {
	if !o.status.Cancellable() {
		return ErrNotCancellable
	}
	o.status = StatusCancelled
	o.updatedAt = storedTime(now)
	return nil
}

// storedTime matches the microsecond precision of timestamptz so that a freshly built
// aggregate and one read back from storage carry the same instants.
func storedTime(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

// VerifyTotal checks the creation-time invariant total == Σ unitPrice × quantity.
func (o *Order) VerifyTotal() error {
	sum := decimal.Zero
	for _, it := range o.items {
		sum = sum.Add(it.LineTotal())
	}
	if !sum.Equal(o.total) {
		return ErrTotalMismatch
	}
	return nil
}
