package api

import (
	"net/http"
	"strconv"

	"order-saga/internal/domain/order"
	reqdto "order-saga/internal/handler/dto/request"
	resdto "order-saga/internal/handler/dto/response"
	"order-saga/internal/handler/middleware"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Create order
// @Description Create an order from the caller's cart and start stock reservation
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Shipping details"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		abortWithDomainError(c, order.ErrMissingOwnerOrSession)
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidInput(c, err, "Invalid request")
		return
	}
	shipping, err := req.ToShippingInfo()
	if err != nil {
		abortInvalidInput(c, err, "Invalid request")
		return
	}

	created, err := h.cmds.CreateOrder(c.Request.Context(), commands.CreateOrderInput{
		Owner:    owner,
		Shipping: shipping,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrder(created))
}

// @Summary List orders
// @Description List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 200)"
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		abortWithDomainError(c, order.ErrMissingOwnerOrSession)
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abortInvalidInput(c, err, "Invalid limit")
			return
		}
		limit = n
	}
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	views, next, err := h.q.ListByOwner(c.Request.Context(), owner, cursor, limit)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromOrderViews(views, next)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get order
// @Description Get one of the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		abortWithDomainError(c, order.ErrMissingOwnerOrSession)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromOrderView(view)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel order
// @Description Cancel one of the caller's orders while it is still CREATED
// @Tags orders
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		abortWithDomainError(c, order.ErrMissingOwnerOrSession)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.CancelOrder(c.Request.Context(), owner, id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortInvalidInput(c, err, "Invalid "+name)
		return 0, false
	}
	return id, true
}
