package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments and every process needs (port, brokers)
// - default: Values common across all environments (timezone, topic names, retry policy), standard settings
// - Validate: Values only some processes need (DB credentials, JWT secret), checked where they are used
// -----------------------------------------------------------------------------

type Config struct {
	Service ServiceConfig
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Kafka   KafkaConfig
	Retry   RetryConfig
	Outbox  OutboxConfig
	Cart    CartConfig
	SMTP    SMTPConfig
	Redis   RedisConfig
	Tracing TracingConfig
}

type ServiceConfig struct {
	Name    string `envconfig:"SERVICE_NAME" default:"order-saga"`
	Version string `envconfig:"SERVICE_VERSION" default:"dev"`
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the external auth service; this service only verifies them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

type KafkaConfig struct {
	Brokers      []string      `envconfig:"KAFKA_BROKERS" required:"true"`
	GroupID      string        `envconfig:"KAFKA_GROUP_ID" required:"true"`
	Readers      int           `envconfig:"KAFKA_READERS" default:"3"`
	BatchTimeout time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT" default:"10ms"`
	// in-place redelivery delay for consumers without a retry topic
	HandlerBackoff time.Duration `envconfig:"KAFKA_HANDLER_BACKOFF" default:"1s"`

	OrderCreatedTopic           string `envconfig:"TOPIC_ORDER_CREATED" default:"order-created"`
	OrderCancelledTopic         string `envconfig:"TOPIC_ORDER_CANCELLED" default:"order-cancelled"`
	StockReserveRequestedTopic  string `envconfig:"TOPIC_STOCK_RESERVE_REQUESTED" default:"stock-reserve-requested"`
	StockReservationFailedTopic string `envconfig:"TOPIC_STOCK_RESERVATION_FAILED" default:"stock-reservation-failed"`
}

type RetryConfig struct {
	Attempts    int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
	Backoff     time.Duration `envconfig:"RETRY_BACKOFF" default:"2s"`
	RetrySuffix string        `envconfig:"RETRY_TOPIC_SUFFIX" default:"-retry"`
	DLTSuffix   string        `envconfig:"RETRY_DLT_SUFFIX" default:".dlt"`
}

type OutboxConfig struct {
	Interval    time.Duration `envconfig:"OUTBOX_INTERVAL" default:"500ms"`
	BatchSize   int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	MaxAttempts int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"20"`
}

type CartConfig struct {
	BaseURL string        `envconfig:"CART_BASE_URL" default:"http://localhost:8081"`
	Timeout time.Duration `envconfig:"CART_TIMEOUT" default:"3s"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"localhost"`
	Port     string `envconfig:"SMTP_PORT" default:"1025"`
	Username string `envconfig:"SMTP_USERNAME" default:""`
	Password string `envconfig:"SMTP_PASSWORD" default:""`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@order-saga.local"`
}

type RedisConfig struct {
	Addr      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password  string        `envconfig:"REDIS_PASSWORD" default:""`
	DB        int           `envconfig:"REDIS_DB" default:"0"`
	DedupeTTL time.Duration `envconfig:"NOTIFY_DEDUPE_TTL" default:"24h"`
}

type TracingConfig struct {
	// empty endpoint keeps the global no-op tracer provider
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
	Insecure     bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	SampleRatio  float64 `envconfig:"OTEL_TRACES_SAMPLE_RATIO" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *DBConfig) Validate() error {
	if c.User == "" || c.Password == "" || c.DBName == "" {
		return fmt.Errorf("DB_USER, DB_PASSWORD and DB_NAME are required")
	}
	return nil
}

func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (c *SMTPConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadSection fills a single section, for tools that need only part of the configuration.
func LoadSection(section any) error {
	if err := envconfig.Process("", section); err != nil {
		return fmt.Errorf("failed to process env config: %w", err)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Service: ServiceConfig{
			Name:    "order-saga-test",
			Version: "test",
		},
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Kafka: KafkaConfig{
			Brokers:                     []string{"localhost:9092"},
			GroupID:                     "order-saga-test",
			Readers:                     1,
			BatchTimeout:                10 * time.Millisecond,
			HandlerBackoff:              10 * time.Millisecond,
			OrderCreatedTopic:           "order-created",
			OrderCancelledTopic:         "order-cancelled",
			StockReserveRequestedTopic:  "stock-reserve-requested",
			StockReservationFailedTopic: "stock-reservation-failed",
		},
		Retry: RetryConfig{
			Attempts:    3,
			Backoff:     10 * time.Millisecond,
			RetrySuffix: "-retry",
			DLTSuffix:   ".dlt",
		},
		Outbox: OutboxConfig{
			Interval:    50 * time.Millisecond,
			BatchSize:   100,
			MaxAttempts: 20,
		},
		Cart: CartConfig{
			BaseURL: "http://localhost:18081",
			Timeout: time.Second,
		},
		SMTP: SMTPConfig{
			Host: "localhost",
			Port: "11025",
			From: "no-reply@order-saga.test",
		},
		Redis: RedisConfig{
			Addr:      "localhost:16379",
			DedupeTTL: time.Minute,
		},
	}
}
