//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"

	"order-saga/internal/domain/order"
	"order-saga/internal/domain/stock"
	"order-saga/internal/event"
	"order-saga/internal/infra"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/shared"
)

type outboxRow struct {
	topic string
	msg   event.Message
}

// memUoW is an in-memory UnitOfWork. Transactions are serialized and roll back on error.
type memUoW struct {
	mu           sync.Mutex
	nextOrderID  int64
	orders       map[int64]*order.Order
	stocks       map[int64]*stock.Stock
	reservations map[int64][]stock.ReservationItem
	outbox       []outboxRow
	commits      int
}

func newMemUoW() *memUoW {
	return &memUoW{
		orders:       map[int64]*order.Order{},
		stocks:       map[int64]*stock.Stock{},
		reservations: map[int64][]stock.ReservationItem{},
	}
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	snapOrders := copyMap(u.orders)
	snapStocks := copyMap(u.stocks)
	snapRes := copyMap(u.reservations)
	snapOutbox := len(u.outbox)
	snapNext := u.nextOrderID

	if err := fn(ctx, &memTx{u: u}); err != nil {
		u.orders, u.stocks, u.reservations = snapOrders, snapStocks, snapRes
		u.outbox = u.outbox[:snapOutbox]
		u.nextOrderID = snapNext
		return err
	}
	u.commits++
	return nil
}

func (u *memUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) seedStock(productID int64, available, reserved int32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stocks[productID] = stock.ReconstructStock(productID, available, reserved)
}

func (u *memUoW) seedOrder(o *order.Order) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.orders[o.ID()] = o
	if o.ID() > u.nextOrderID {
		u.nextOrderID = o.ID()
	}
}

func (u *memUoW) stockOf(productID int64) *stock.Stock {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stocks[productID]
}

func (u *memUoW) orderOf(id int64) *order.Order {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.orders[id]
}

func (u *memUoW) outboxRows() []outboxRow {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]outboxRow, len(u.outbox))
	copy(out, u.outbox)
	return out
}

func (u *memUoW) orderCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.orders)
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memTx struct{ u *memUoW }

func (t *memTx) Orders() shared.OrderRepository  { return &memOrders{u: t.u} }
func (t *memTx) Stocks() shared.StockRepository  { return &memStocks{u: t.u} }
func (t *memTx) Outbox() shared.OutboxRepository { return &memOutbox{u: t.u} }
func (t *memTx) DB() sqlc.DBTX                   { return nil }

type memOrders struct{ u *memUoW }

func (r *memOrders) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) (int64, error) {
	r.u.nextOrderID++
	id := r.u.nextOrderID
	if err := o.AssignID(id); err != nil {
		return 0, err
	}
	r.u.orders[id] = o
	return id, nil
}

func (r *memOrders) FindByID(_ context.Context, _ sqlc.DBTX, id int64) (*order.Order, error) {
	o, ok := r.u.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return cloneOrder(o), nil
}

func (r *memOrders) CancelIfCreated(_ context.Context, _ sqlc.DBTX, o *order.Order) (bool, error) {
	stored, ok := r.u.orders[o.ID()]
	if !ok || stored.Status() != order.StatusCreated {
		return false, nil
	}
	r.u.orders[o.ID()] = cloneOrder(o)
	return true, nil
}

// cloneOrder keeps callers from mutating stored rows outside a commit.
func cloneOrder(o *order.Order) *order.Order {
	return order.ReconstructOrder(o.ID(), o.Owner(), o.Shipping(), o.Items(), o.Total(),
		o.Status(), o.CreatedAt(), o.UpdatedAt())
}

type memStocks struct{ u *memUoW }

func (r *memStocks) Create(_ context.Context, _ sqlc.DBTX, s *stock.Stock) error {
	if _, ok := r.u.stocks[s.ProductID()]; ok {
		return infra.WrapRepoErr("stock exists", nil, infra.KindDuplicateKey)
	}
	r.u.stocks[s.ProductID()] = clone(s)
	return nil
}

func (r *memStocks) Lock(_ context.Context, _ sqlc.DBTX, productID int64) (*stock.Stock, error) {
	s, ok := r.u.stocks[productID]
	if !ok {
		return nil, infra.WrapRepoErr("stock not found", nil, infra.KindNotFound)
	}
	return clone(s), nil
}

func (r *memStocks) LockMany(_ context.Context, _ sqlc.DBTX, productIDs []int64) (map[int64]*stock.Stock, error) {
	ids := append([]int64(nil), productIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := map[int64]*stock.Stock{}
	for _, id := range ids {
		if s, ok := r.u.stocks[id]; ok {
			out[id] = clone(s)
		}
	}
	return out, nil
}

func (r *memStocks) Save(_ context.Context, _ sqlc.DBTX, s *stock.Stock) error {
	r.u.stocks[s.ProductID()] = clone(s)
	return nil
}

func (r *memStocks) RecordReservation(_ context.Context, _ sqlc.DBTX, orderID int64, items []stock.ReservationItem) (bool, error) {
	if _, ok := r.u.reservations[orderID]; ok {
		return false, nil
	}
	r.u.reservations[orderID] = items
	return true, nil
}

func clone(s *stock.Stock) *stock.Stock {
	return stock.ReconstructStock(s.ProductID(), s.Available(), s.Reserved())
}

type memOutbox struct{ u *memUoW }

func (r *memOutbox) Append(_ context.Context, _ sqlc.DBTX, topic string, msg event.Message) error {
	r.u.outbox = append(r.u.outbox, outboxRow{topic: topic, msg: msg})
	return nil
}

type fakeCart struct {
	mu       sync.Mutex
	cart     *commands.Cart
	getErr   error
	clearErr error
	gets     int
	clears   int
}

func (f *fakeCart) Get(_ context.Context, _ order.OwnerRef) (*commands.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.cart == nil {
		return &commands.Cart{}, nil
	}
	return f.cart, nil
}

func (f *fakeCart) Clear(_ context.Context, _ order.OwnerRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return f.clearErr
}

var testTopics = event.Topics{
	OrderCreated:           "order-created",
	OrderCancelled:         "order-cancelled",
	StockReserveRequested:  "stock-reserve-requested",
	StockReservationFailed: "stock-reservation-failed",
}
