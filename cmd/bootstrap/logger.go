package bootstrap

import (
	"context"
	"log/slog"

	"order-saga/internal/handler/middleware"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/tracing"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger writes to stdout and, with an OTLP endpoint configured, also exports every
// record as an OpenTelemetry log correlated with the active span.
func NewLogger(lc fx.Lifecycle, cfg config.Config) (*slog.Logger, error) {
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	otelHandler, shutdown, err := tracing.SetupLogs(context.Background(), cfg.Service, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	if otelHandler != nil {
		logger = slog.New(tracing.Tee(logger.Handler(), otelHandler))
		slog.SetDefault(logger)
	}

	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return logger.With("service", cfg.Service.Name), nil
}
