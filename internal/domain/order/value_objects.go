package order

import (
	"net/mail"
	"regexp"
	"strings"

	"order-saga/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidEmail        = errs.New("invalid email address")
	ErrInvalidShippingInfo = errs.New("invalid shipping information")
	ErrInvalidItem         = errs.New("invalid order item")
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
	zipPattern   = regexp.MustCompile(`^[A-Za-z0-9 -]{3,10}$`)
)

type ShippingInfo struct {
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Street      string
	HouseNumber string
	City        string
	ZipCode     string
	Country     string
}

// NewShippingInfo trims every field and validates the contact and address parts.
func NewShippingInfo(in ShippingInfo) (ShippingInfo, error) {
	s := ShippingInfo{
		Email:       strings.TrimSpace(in.Email),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Street:      strings.TrimSpace(in.Street),
		HouseNumber: strings.TrimSpace(in.HouseNumber),
		City:        strings.TrimSpace(in.City),
		ZipCode:     strings.TrimSpace(in.ZipCode),
		Country:     strings.TrimSpace(in.Country),
	}

	addr, err := mail.ParseAddress(s.Email)
	if err != nil || addr.Address != s.Email {
		return ShippingInfo{}, ErrInvalidEmail
	}

	required := []struct{ field, value string }{
		{"firstName", s.FirstName},
		{"lastName", s.LastName},
		{"street", s.Street},
		{"houseNumber", s.HouseNumber},
		{"city", s.City},
		{"country", s.Country},
	}
	for _, r := range required {
		if r.value == "" {
			return ShippingInfo{}, errs.Wrapf(ErrInvalidShippingInfo, "%s is required", r.field)
		}
	}
	if !phonePattern.MatchString(s.PhoneNumber) {
		return ShippingInfo{}, errs.Wrap(ErrInvalidShippingInfo, "phoneNumber has an invalid format")
	}
	if !zipPattern.MatchString(s.ZipCode) {
		return ShippingInfo{}, errs.Wrap(ErrInvalidShippingInfo, "zipCode has an invalid format")
	}

	return s, nil
}

// Item is a line of an order. Name and unit price are snapshots taken from the cart at
// creation time, never re-read from the catalog.
type Item struct {
	productID int64
	name      string
	unitPrice decimal.Decimal
	quantity  int32
}

func NewItem(productID int64, name string, unitPrice decimal.Decimal, quantity int32) (Item, error) {
	switch {
	case productID <= 0:
		return Item{}, errs.Wrap(ErrInvalidItem, "product id must be positive")
	case quantity <= 0:
		return Item{}, errs.Wrap(ErrInvalidItem, "quantity must be positive")
	case unitPrice.IsNegative():
		return Item{}, errs.Wrap(ErrInvalidItem, "unit price must not be negative")
	}
	return Item{
		productID: productID,
		name:      strings.TrimSpace(name),
		unitPrice: unitPrice,
		quantity:  quantity,
	}, nil
}

func (i Item) ProductID() int64           { return i.productID }
func (i Item) Name() string               { return i.name }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i Item) Quantity() int32            { return i.quantity }

func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt32(i.quantity))
}
