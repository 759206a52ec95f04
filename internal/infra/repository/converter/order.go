package converter

import (
	"order-saga/internal/domain/order"
	"order-saga/internal/infra/sqlc"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

var errCorruptOrderRow = errs.New("order row violates domain invariants")

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	s := o.Shipping()
	return sqlc.CreateOrderParams{
		UserID:      pgconv.Int8PtrToPgtype(o.Owner().UserIDPtr()),
		SessionID:   pgconv.StringPtrToPgtype(o.Owner().SessionIDPtr()),
		Email:       s.Email,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		PhoneNumber: s.PhoneNumber,
		Street:      s.Street,
		HouseNumber: s.HouseNumber,
		City:        s.City,
		ZipCode:     s.ZipCode,
		Country:     s.Country,
		TotalAmount: o.Total(),
		Status:      o.Status().String(),
		CreatedAt:   pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(o.UpdatedAt()),
	}
}

func OrderItemToCreateParams(orderID int64, lineNo int, it order.Item) sqlc.CreateOrderItemParams {
	return sqlc.CreateOrderItemParams{
		OrderID:   orderID,
		LineNo:    int32(lineNo), // #nosec G115 -- line count is bounded by the cart size
		ProductID: it.ProductID(),
		Name:      it.Name(),
		UnitPrice: it.UnitPrice(),
		Quantity:  it.Quantity(),
	}
}

func OwnerFromRow(userID pgtype.Int8, sessionID pgtype.Text) (order.OwnerRef, error) {
	if uid := pgconv.Int8PtrFromPgtype(userID); uid != nil {
		return order.NewUserOwner(*uid)
	}
	if sid := pgconv.StringPtrFromPgtype(sessionID); sid != nil {
		return order.NewSessionOwner(*sid)
	}
	return order.OwnerRef{}, errCorruptOrderRow
}

// OrderFromRows rebuilds the aggregate. Items must already be in line order.
func OrderFromRows(row sqlc.Order, items []sqlc.OrderItem) (*order.Order, error) {
	owner, err := OwnerFromRow(row.UserID, row.SessionID)
	if err != nil {
		return nil, errs.Wrapf(err, "order %d", row.ID)
	}
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "order %d", row.ID)
	}

	domainItems := make([]order.Item, 0, len(items))
	for _, it := range items {
		di, err := order.NewItem(it.ProductID, it.Name, it.UnitPrice, it.Quantity)
		if err != nil {
			return nil, errs.Wrapf(err, "order %d line %d", row.ID, it.LineNo)
		}
		domainItems = append(domainItems, di)
	}

	shipping := order.ShippingInfo{
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		PhoneNumber: row.PhoneNumber,
		Street:      row.Street,
		HouseNumber: row.HouseNumber,
		City:        row.City,
		ZipCode:     row.ZipCode,
		Country:     row.Country,
	}

	return order.ReconstructOrder(
		row.ID,
		owner,
		shipping,
		domainItems,
		row.TotalAmount,
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
