package bootstrap

import (
	"order-saga/cmd/bootstrap/components"
	"order-saga/internal/pkg/clock"

	"go.uber.org/fx"
)

// CoreModule is shared by every process.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	fx.Provide(clock.NewRealClock),
)

// OrderServiceModule serves the order API, relays its outbox and compensates failed reservations.
var OrderServiceModule = fx.Options(
	CoreModule,
	DBModule,
	JWTModule,
	KafkaModule,
	ServerModule,
	components.PersistenceModule,
	components.OrderUseCaseModule,
	components.OrderHandlerModule,
	components.OutboxModule,
	components.CompensationModule,
)

// StockServiceModule serves the ledger API and runs the reservation worker with its retry
// and dead-letter routes.
var StockServiceModule = fx.Options(
	CoreModule,
	DBModule,
	KafkaModule,
	ServerModule,
	components.PersistenceModule,
	components.StockUseCaseModule,
	components.StockHandlerModule,
	components.OutboxModule,
	components.ReservationModule,
)

var NotifierModule = fx.Options(
	CoreModule,
	KafkaModule,
	RedisModule,
	ServerModule,
	components.HealthHandlerModule,
	components.NotifierModule,
)
