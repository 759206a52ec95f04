package request

import (
	"order-saga/internal/domain/order"

	"github.com/jinzhu/copier"
)

// CreateOrderRequest carries the shipping details; the items come from the cart.
type CreateOrderRequest struct {
	Email       string `json:"email" binding:"required,email,max=255"`
	FirstName   string `json:"firstName" binding:"required,max=100"`
	LastName    string `json:"lastName" binding:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=20"`
	Street      string `json:"street" binding:"required,max=200"`
	HouseNumber string `json:"houseNumber" binding:"required,max=20"`
	City        string `json:"city" binding:"required,max=100"`
	ZipCode     string `json:"zipCode" binding:"required,max=10"`
	Country     string `json:"country" binding:"required,max=100"`
}

func (r CreateOrderRequest) ToShippingInfo() (order.ShippingInfo, error) {
	var info order.ShippingInfo
	if err := copier.Copy(&info, &r); err != nil {
		return order.ShippingInfo{}, err
	}
	return info, nil
}
