package components

import (
	"context"
	"log/slog"

	"order-saga/internal/consumer"
	"order-saga/internal/infra/mailer"
	"order-saga/internal/infra/messaging"
	"order-saga/internal/infra/outbox"
	"order-saga/internal/pkg/config"
	"order-saga/internal/usecase/shared"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("messaging/outbox",
	fx.Provide(
		NewRelay,
	),
	fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, log *slog.Logger, relay *outbox.Relay) {
		runInBackground(lc, sd, log, "outbox relay", relay.Run)
	}),
)

// CompensationModule cancels orders whose reservation failed for good.
var CompensationModule = fx.Module("messaging/compensation",
	fx.Provide(
		consumer.NewCompensationConsumer,
	),
	fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, log *slog.Logger, g *consumer.Group, c *consumer.CompensationConsumer) {
		runInBackground(lc, sd, log, "compensation consumer", func(ctx context.Context) error {
			return g.Run(ctx, c.Route())
		})
	}),
)

var ReservationModule = fx.Module("messaging/reservation",
	fx.Provide(
		consumer.NewReservationWorker,
		consumer.NewDeadLetterHandler,
	),
	fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, log *slog.Logger, g *consumer.Group, w *consumer.ReservationWorker, dlt *consumer.DeadLetterHandler) {
		routes := append(w.Routes(), dlt.Route())
		runInBackground(lc, sd, log, "reservation worker", func(ctx context.Context) error {
			return g.Run(ctx, routes...)
		})
	}),
)

var NotifierModule = fx.Module("messaging/notifier",
	fx.Provide(
		fx.Annotate(
			NewMailer,
			fx.As(new(consumer.Mailer)),
		),
		consumer.NewNotifier,
	),
	fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, log *slog.Logger, g *consumer.Group, n *consumer.Notifier) {
		runInBackground(lc, sd, log, "notifier", func(ctx context.Context) error {
			return g.Run(ctx, n.Routes()...)
		})
	}),
)

func NewRelay(log *slog.Logger, uow shared.UnitOfWork, q outbox.Queries, producer messaging.Producer, cfg config.Config) *outbox.Relay {
	return outbox.NewRelay(log, uow, q, producer, cfg.Outbox)
}

func NewMailer(cfg config.Config) *mailer.SMTPMailer {
	return mailer.New(cfg.SMTP)
}

// runInBackground starts fn with the app and cancels it on stop. An early failure shuts
// the whole process down so the orchestrator restarts it.
func runInBackground(lc fx.Lifecycle, sd fx.Shutdowner, log *slog.Logger, name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				log.Info("starting "+name)
				if err := fn(ctx); err != nil && ctx.Err() == nil {
					log.Error(name+" stopped", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
