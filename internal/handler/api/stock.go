package api

import (
	"net/http"

	reqdto "order-saga/internal/handler/dto/request"
	resdto "order-saga/internal/handler/dto/response"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	cmds commands.StockCommands
	q    queries.StockQueries
}

func NewStockHandler(cmds commands.StockCommands, q queries.StockQueries) *StockHandler {
	return &StockHandler{cmds: cmds, q: q}
}

// @Summary Get stock
// @Tags stocks
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} resdto.StockResponse
// @Failure 404 {object} httperr.Response
// @Router /stocks/{productId} [get]
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	view, err := h.q.GetByProduct(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockView(view))
}

// @Summary Get stock batch
// @Description Unknown products are omitted from the result
// @Tags stocks
// @Produce json
// @Param productIds query string true "Comma separated product ids"
// @Success 200 {object} map[string]resdto.StockResponse
// @Failure 400 {object} httperr.Response
// @Router /stocks/batch [get]
func (h *StockHandler) Batch(c *gin.Context) {
	ids, err := reqdto.ParseProductIDs(c.Query("productIds"))
	if err != nil {
		abortInvalidInput(c, err, "Invalid productIds")
		return
	}
	views, err := h.q.GetBatch(c.Request.Context(), ids)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockBatch(views))
}

// @Summary Create stock
// @Tags stocks
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body reqdto.CreateStockRequest true "Initial quantity"
// @Success 201 {object} resdto.StockResponse
// @Failure 409 {object} httperr.Response
// @Router /stocks/{productId} [post]
func (h *StockHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req reqdto.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidInput(c, err, "Invalid request")
		return
	}
	s, err := h.cmds.CreateStock(c.Request.Context(), id, *req.AvailableQuantity)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromStock(s))
}

// @Summary Adjust available stock
// @Description Apply a signed correction to the physical count
// @Tags stocks
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body reqdto.AdjustStockRequest true "Quantity change"
// @Success 200 {object} resdto.StockResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /stocks/{productId} [patch]
func (h *StockHandler) Adjust(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req reqdto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidInput(c, err, "Invalid request")
		return
	}
	s, err := h.cmds.AdjustAvailable(c.Request.Context(), id, *req.QuantityChange)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStock(s))
}

// @Summary Reserve stock
// @Description Reserve a quantity of a single product outside the order saga
// @Tags stocks
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body reqdto.ReserveStockRequest true "Quantity"
// @Success 200 {object} resdto.StockResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /stocks/{productId}/reserve [patch]
func (h *StockHandler) Reserve(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req reqdto.ReserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidInput(c, err, "Invalid request")
		return
	}
	s, err := h.cmds.ReserveOne(c.Request.Context(), id, req.Quantity)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStock(s))
}
