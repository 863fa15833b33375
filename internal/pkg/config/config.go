package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials) and security settings
// - default: Values common across all environments (timezone, timeout, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Payment PaymentConfig
	Notify  NotifyConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5*60*60 + 30*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// PaymentConfig points at the external payment gateway. KeySecret doubles as
// the HMAC key for payment attestation verification, matching the gateway's
// signing contract.
type PaymentConfig struct {
	BaseURL   string        `envconfig:"PAYMENT_BASE_URL" default:"https://api.razorpay.com"`
	KeyID     string        `envconfig:"PAYMENT_KEY_ID" required:"true"`
	KeySecret string        `envconfig:"PAYMENT_KEY_SECRET" required:"true"`
	Timeout   time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"15s"`
}

type NotifyConfig struct {
	OpsWebhookURL string        `envconfig:"NOTIFY_OPS_WEBHOOK_URL" default:""`
	Timeout       time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`
}

type BookingConfig struct {
	Currency   string `envconfig:"BOOKING_CURRENCY" default:"INR"`
	TaxPercent string `envconfig:"BOOKING_TAX_PERCENT" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
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
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		Payment: PaymentConfig{
			BaseURL:   "http://localhost:9999",
			KeyID:     "test_key",
			KeySecret: "test_secret",
			Timeout:   time.Second,
		},
		Booking: BookingConfig{
			Currency:   "INR",
			TaxPercent: "0",
		},
	}
}
