package components

import (
	"order-saga/internal/infra/cartclient"
	"order-saga/internal/pkg/config"
	"order-saga/internal/usecase"
	"order-saga/internal/usecase/commands"
	"order-saga/internal/usecase/queries"

	"go.uber.org/fx"
)

var OrderUseCaseModule = fx.Module("usecase/order",
	fx.Provide(
		fx.Annotate(
			NewCartClient,
			fx.As(new(commands.CartClient)),
		),
		commands.NewOrderCommands,
		queries.NewOrderQueries,
		usecase.NewTokenValidator,
	),
)

var StockUseCaseModule = fx.Module("usecase/stock",
	fx.Provide(
		commands.NewStockCommands,
		queries.NewStockQueries,
	),
)

func NewCartClient(cfg config.Config) *cartclient.Client {
	return cartclient.New(cfg.Cart)
}
