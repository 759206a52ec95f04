package response

import (
	"time"

	"order-saga/internal/domain/order"
	"order-saga/internal/usecase/queries"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type OrderItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int32  `json:"quantity"`
}

type OrderResponse struct {
	ID          int64               `json:"id"`
	UserID      *int64              `json:"userId,omitempty"`
	SessionID   *string             `json:"sessionId,omitempty"`
	Status      string              `json:"status"`
	TotalAmount string              `json:"totalAmount"`
	Email       string              `json:"email"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	PhoneNumber string              `json:"phoneNumber"`
	Street      string              `json:"street"`
	HouseNumber string              `json:"houseNumber"`
	City        string              `json:"city"`
	ZipCode     string              `json:"zipCode"`
	Country     string              `json:"country"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var viewCopyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return money(src.(decimal.Decimal)), nil
			},
		},
	},
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res := &OrderResponse{}
	if err := copier.CopyWithOption(res, v, viewCopyOption); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	return res, nil
}

func FromOrderViews(views []*queries.OrderView, next *queries.Cursor) (*OrderListResponse, error) {
	out := &OrderListResponse{Orders: make([]*OrderResponse, 0, len(views))}
	for _, v := range views {
		r, err := FromOrderView(v)
		if err != nil {
			return nil, err
		}
		out.Orders = append(out.Orders, r)
	}
	if next != nil {
		out.NextCursor = next.After
	}
	return out, nil
}

// FromOrder renders a freshly created aggregate without a read round trip.
func FromOrder(o *order.Order) *OrderResponse {
	s := o.Shipping()
	items := o.Items()
	res := &OrderResponse{
		ID:          o.ID(),
		UserID:      o.Owner().UserIDPtr(),
		SessionID:   o.Owner().SessionIDPtr(),
		Status:      o.Status().String(),
		TotalAmount: money(o.Total()),
		Email:       s.Email,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		PhoneNumber: s.PhoneNumber,
		Street:      s.Street,
		HouseNumber: s.HouseNumber,
		City:        s.City,
		ZipCode:     s.ZipCode,
		Country:     s.Country,
		Items:       make([]OrderItemResponse, len(items)),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
	for i, it := range items {
		res.Items[i] = OrderItemResponse{
			ProductID: it.ProductID(),
			Name:      it.Name(),
			UnitPrice: money(it.UnitPrice()),
			Quantity:  it.Quantity(),
		}
	}
	return res
}
