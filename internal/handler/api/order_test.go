//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"order-saga/internal/domain/order"
	"order-saga/internal/domain/stock"
	"order-saga/internal/handler/api"
	resdto "order-saga/internal/handler/dto/response"
	"order-saga/internal/handler/middleware"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/queries"
	"order-saga/tests/common/builder"
	"order-saga/tests/common/httptest"
	"order-saga/tests/common/testutil"
	commandsmock "order-saga/tests/mock/commands"
	queriesmock "order-saga/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	owner        order.OwnerRef
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	h := api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.owner, _ = order.NewUserOwner(42)
	withOwner := func(c *gin.Context) {
		if c.GetHeader("X-Test-Anonymous") == "" {
			middleware.SetOwner(c, s.owner)
		}
		c.Next()
	}

	g := s.router.Group("/orders", withOwner)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/cancel", h.Cancel)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestCreate() {
	b := builder.NewOrderBuilder()

	s.Run("success returns the created order", func() {
		s.mockCommands.EXPECT().
			CreateOrder(gomock.Any(), commands.CreateOrderInput{Owner: s.owner, Shipping: b.Shipping}).
			Return(b.BuildDomain(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders", b.BuildCreateRequestDTO(), "")

		var res resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal(b.ID, res.ID)
		s.Equal("CREATED", res.Status)
		s.Equal("119.79", res.TotalAmount)
		s.Require().Len(res.Items, 2)
		s.Equal("49.90", res.Items[0].UnitPrice)
		s.Nil(res.SessionID)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"empty cart", commands.ErrCartEmpty, http.StatusBadRequest, "CART_IS_EMPTY"},
		{"insufficient stock", &stock.InsufficientStockError{ProductID: 7, Requested: 3, Sellable: 1}, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"cart service down", commands.ErrCartUnavailable, http.StatusServiceUnavailable, "CART_UNAVAILABLE"},
		{"invalid shipping", order.ErrInvalidShippingInfo, http.StatusBadRequest, "INVALID_INPUT"},
		{"unexpected", errUnexpected, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders", b.BuildCreateRequestDTO(), "")

			httptest.AssertErrorCode(s.T(), w, tc.status, tc.code)
		})
	}

	s.Run("invalid body never reaches the command", func() {
		body := testutil.DtoMap(s.T(), b.BuildCreateRequestDTO(), testutil.Field("email", nil))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders", body, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_INPUT")
	})

	s.Run("missing owner", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/orders", b.BuildCreateRequestDTO(),
			map[string]string{"X-Test-Anonymous": "1"})

		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "MISSING_OWNER")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	b := builder.NewOrderBuilder()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.owner, b.ID).Return(b.BuildView(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/1001", nil, "")

		var res resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal("119.79", res.TotalAmount)
		s.Equal("London", res.City)
		s.Require().Len(res.Items, 2)
		s.Equal("19.99", res.Items[1].UnitPrice)
		s.Require().NotNil(res.UserID)
		s.Equal(int64(42), *res.UserID)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.owner, int64(5)).Return(nil, order.ErrOrderNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/5", nil, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "ORDER_NOT_FOUND")
	})

	s.Run("invalid id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/abc", nil, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	b := builder.NewOrderBuilder()

	s.Run("passes cursor and limit and returns the next cursor", func() {
		s.mockQueries.EXPECT().
			ListByOwner(gomock.Any(), s.owner, &queries.Cursor{After: "abc"}, 10).
			Return([]*queries.OrderView{b.BuildView()}, &queries.Cursor{After: "next"}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=10&cursor=abc", nil, "")

		var res resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Len(res.Orders, 1)
		s.Equal("next", res.NextCursor)
	})

	s.Run("empty list", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.owner, nil, 0).Return(nil, nil, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "")

		var res resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Empty(res.Orders)
		s.Empty(res.NextCursor)
	})

	s.Run("invalid cursor", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.owner, gomock.Any(), 0).Return(nil, nil, queries.ErrInvalidCursor)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?cursor=bad", nil, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_INPUT")
	})

	s.Run("invalid limit", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=ten", nil, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func (s *OrderHandlerTestSuite) TestCancel() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.owner, int64(1001)).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/orders/1001/cancel", nil, "")

		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("already cancelled", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.owner, int64(1001)).Return(order.ErrNotCancellable)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/orders/1001/cancel", nil, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusConflict, "ORDER_CANNOT_BE_CANCELLED")
	})

	s.Run("someone else's order", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), s.owner, int64(3)).Return(order.ErrOrderNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/orders/3/cancel", nil, "")

		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, "ORDER_NOT_FOUND")
	})
}

var errUnexpected = errs.New("connection reset")
