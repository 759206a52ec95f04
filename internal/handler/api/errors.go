package api

import (
	"net/http"

	"order-saga/internal/domain/order"
	"order-saga/internal/domain/stock"
	"order-saga/internal/handler/httperr"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first matching target wins.
var errorMappings = []errorMapping{
	{commands.ErrCartEmpty, http.StatusBadRequest, "CART_IS_EMPTY", "Cart is empty"},
	{stock.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Insufficient stock for product"},
	{order.ErrMissingOwnerOrSession, http.StatusBadRequest, "MISSING_OWNER", "User ID or session ID is required"},
	{order.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND", "Order was not found"},
	{order.ErrNotCancellable, http.StatusConflict, "ORDER_CANNOT_BE_CANCELLED", "Only orders with created status can be cancelled"},
	{order.ErrInvalidEmail, http.StatusBadRequest, "INVALID_INPUT", "Invalid email address"},
	{order.ErrInvalidShippingInfo, http.StatusBadRequest, "INVALID_INPUT", "Invalid shipping information"},
	{order.ErrInvalidItem, http.StatusBadRequest, "INVALID_INPUT", "Cart contains an invalid item"},
	{commands.ErrCartUnavailable, http.StatusServiceUnavailable, "CART_UNAVAILABLE", "Cart service is unavailable"},
	{stock.ErrStockNotFound, http.StatusNotFound, "STOCK_NOT_FOUND", "Stock was not found"},
	{stock.ErrStockAlreadyExists, http.StatusConflict, "STOCK_ALREADY_EXISTS", "Stock already exists for product"},
	{stock.ErrQuantityWouldGoNegative, http.StatusBadRequest, "QUANTITY_WOULD_GO_NEGATIVE", "Available quantity cannot be negative"},
	{stock.ErrBelowReserved, http.StatusBadRequest, "BELOW_RESERVED", "Available quantity cannot drop below reserved quantity"},
	{stock.ErrNegativeAvailable, http.StatusBadRequest, "INVALID_INPUT", "Available quantity cannot be negative"},
	{stock.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_INPUT", "Quantity must be positive"},
	{stock.ErrInvalidProductID, http.StatusBadRequest, "INVALID_INPUT", "Invalid product id"},
	{queries.ErrBatchTooLarge, http.StatusBadRequest, "INVALID_INPUT", "Too many product ids"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "INVALID_INPUT", "Invalid cursor"},
}

// abortWithDomainError maps use-case errors to a status and a stable code. Anything
// unrecognised is a 500.
func abortWithDomainError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithCode(c, m.status, m.code, err, m.message, detailOf(err))
			return
		}
	}
	httperr.AbortWithCode(c, http.StatusInternalServerError, "INTERNAL_ERROR", err, "Internal server error", nil)
}

func detailOf(err error) any {
	var insufficient *stock.InsufficientStockError
	if errs.As(err, &insufficient) {
		return gin.H{
			"productId": insufficient.ProductID,
			"requested": insufficient.Requested,
			"available": insufficient.Sellable,
		}
	}
	return nil
}

func abortInvalidInput(c *gin.Context, err error, msg string) {
	httperr.AbortWithCode(c, http.StatusBadRequest, "INVALID_INPUT", err, msg, nil)
}
