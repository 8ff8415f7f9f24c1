package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Pricing   PricingConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
}

type ServerConfig struct {
	Port              string        `envconfig:"PORT" required:"true"`
	GinMode           string        `envconfig:"GIN_MODE" default:"release"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-RateLimit-Remaining"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string        `envconfig:"JWT_ISSUER"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

// Money values are parsed with decimal.Decimal's text unmarshaller, never as floats.
type PricingConfig struct {
	EnforceCouponSchedule bool            `envconfig:"PRICING_ENFORCE_COUPON_SCHEDULE" default:"true"`
	ShippingFlatRate      decimal.Decimal `envconfig:"PRICING_SHIPPING_FLAT_RATE" default:"50"`
	FreeShippingThreshold decimal.Decimal `envconfig:"PRICING_FREE_SHIPPING_THRESHOLD" default:"499"`
	CODFee                decimal.Decimal `envconfig:"PRICING_COD_FEE" default:"40"`
	MinimumCharge         decimal.Decimal `envconfig:"PRICING_MINIMUM_CHARGE" default:"1"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Enabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	Limit   int64         `envconfig:"RATE_LIMIT_VERIFY_LIMIT" default:"30"`
	Window  time.Duration `envconfig:"RATE_LIMIT_VERIFY_WINDOW" default:"1m"`
}

type KafkaConfig struct {
	Enabled  bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers  []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic    string   `envconfig:"KAFKA_TOPIC" default:"storefront.pricing.events"`
	ClientID string   `envconfig:"KAFKA_CLIENT_ID" default:"storefront-pricing"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:    "8889", // Test port
			GinMode: "test",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
			MaxConns: 10,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
			ExposeHeaders: []string{"X-RateLimit-Remaining"},
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
			Issuer:   "storefront-session",
		},
		Pricing: PricingConfig{
			EnforceCouponSchedule: true,
			ShippingFlatRate:      decimal.NewFromInt(50),
			FreeShippingThreshold: decimal.NewFromInt(499),
			CODFee:                decimal.NewFromInt(40),
			MinimumCharge:         decimal.NewFromInt(1),
		},
		RateLimit: RateLimitConfig{
			Limit:  30,
			Window: time.Minute,
		},
		Kafka: KafkaConfig{
			Topic:    "storefront.pricing.events",
			ClientID: "storefront-pricing-test",
		},
	}
}
