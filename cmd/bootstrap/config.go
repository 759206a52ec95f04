package bootstrap

import (
	"log/slog"

	"order-saga/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records the non-secret settings a process started with.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"version", cfg.Service.Version,
		"port", cfg.Server.Port,
		"kafka_brokers", cfg.Kafka.Brokers,
		"kafka_group", cfg.Kafka.GroupID,
		"retry_attempts", cfg.Retry.Attempts,
		"retry_backoff", cfg.Retry.Backoff,
		"tracing_enabled", cfg.Tracing.OTLPEndpoint != "",
	)
}
