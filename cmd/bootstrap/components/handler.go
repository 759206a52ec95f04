package components

import (
	"order-saga/internal/handler"
	"order-saga/internal/handler/api"
	"order-saga/internal/handler/middleware"

	"go.uber.org/fx"
)

var OrderHandlerModule = fx.Module("handler/order",
	fx.Provide(
		api.NewOrderHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewOrderRouter),
)

var StockHandlerModule = fx.Module("handler/stock",
	fx.Provide(
		api.NewStockHandler,
	),
	fx.Invoke(handler.NewStockRouter),
)

var HealthHandlerModule = fx.Module("handler/health",
	fx.Invoke(handler.NewHealthRouter),
)
