//go:build unit || e2e

package builder

import (
	"time"

	"order-saga/internal/domain/order"
	reqdto "order-saga/internal/handler/dto/request"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/queries"

	"github.com/shopspring/decimal"
)

type OrderLine struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int32
}

type OrderBuilder struct {
	ID        int64
	Owner     order.OwnerRef
	Shipping  order.ShippingInfo
	Lines     []OrderLine
	Status    order.Status
	CreatedAt time.Time
}

func NewOrderBuilder() *OrderBuilder {
	owner, _ := order.NewUserOwner(42)
	return &OrderBuilder{
		ID:    1001,
		Owner: owner,
		Shipping: order.ShippingInfo{
			Email:       "buyer@example.com",
			FirstName:   "Ada",
			LastName:    "Lovelace",
			PhoneNumber: "+44 20 7946 0000",
			Street:      "Main Street",
			HouseNumber: "12a",
			City:        "London",
			ZipCode:     "N1 9GU",
			Country:     "UK",
		},
		Lines: []OrderLine{
			{ProductID: 1, Name: "Keyboard", UnitPrice: decimal.RequireFromString("49.90"), Quantity: 2},
			{ProductID: 7, Name: "Mouse", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 1},
		},
		Status:    order.StatusCreated,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithSession(sessionID string) *OrderBuilder {
	b.Owner, _ = order.NewSessionOwner(sessionID)
	return b
}

func (b *OrderBuilder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)))
	}
	return total
}

func (b *OrderBuilder) BuildDomain() *order.Order {
	items := make([]order.Item, 0, len(b.Lines))
	for _, l := range b.Lines {
		it, err := order.NewItem(l.ProductID, l.Name, l.UnitPrice, l.Quantity)
		if err != nil {
			panic(err)
		}
		items = append(items, it)
	}
	return order.ReconstructOrder(b.ID, b.Owner, b.Shipping, items, b.Total(), b.Status, b.CreatedAt, b.CreatedAt)
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	s := b.Shipping
	v := &queries.OrderView{
		ID:          b.ID,
		UserID:      b.Owner.UserIDPtr(),
		SessionID:   b.Owner.SessionIDPtr(),
		Email:       s.Email,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		PhoneNumber: s.PhoneNumber,
		Street:      s.Street,
		HouseNumber: s.HouseNumber,
		City:        s.City,
		ZipCode:     s.ZipCode,
		Country:     s.Country,
		TotalAmount: b.Total(),
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
	for _, l := range b.Lines {
		v.Items = append(v.Items, queries.OrderItemView{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return v
}

// BuildCart returns the cart the order would be created from.
func (b *OrderBuilder) BuildCart(available int32) *commands.Cart {
	cart := &commands.Cart{}
	for _, l := range b.Lines {
		cart.Lines = append(cart.Lines, commands.CartLine{
			ProductID:         l.ProductID,
			Name:              l.Name,
			Quantity:          l.Quantity,
			UnitPrice:         l.UnitPrice,
			AvailableQuantity: available,
		})
	}
	return cart
}

func (b *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	s := b.Shipping
	return reqdto.CreateOrderRequest{
		Email:       s.Email,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		PhoneNumber: s.PhoneNumber,
		Street:      s.Street,
		HouseNumber: s.HouseNumber,
		City:        s.City,
		ZipCode:     s.ZipCode,
		Country:     s.Country,
	}
}
