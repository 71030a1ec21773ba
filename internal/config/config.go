// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config holds all configuration values for the API server and yatractl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CORSOriginsRaw is the comma-separated CORS_ORIGINS value; use CORSOrigins.
	CORSOriginsRaw string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	CORSOrigins []string `ignored:"true"`

	// AppEnv is "production" or anything else. Production turns on Secure cookies.
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `envconfig:"JWT_SECRET"`

	// StorageDriver selects the record store: "file" or "postgres".
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"file"`

	// DataDir is where the file driver keeps its JSON collections.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `envconfig:"MIGRATE_ON_START" default:"false"`

	// AMQPURL enables publishing social events to RabbitMQ when set.
	AMQPURL string `envconfig:"AMQP_URL"`

	// AMQPExchange is the topic exchange social events are published to.
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"yatra.social"`

	// StaticDir serves a prebuilt frontend from this directory when set.
	StaticDir string `envconfig:"STATIC_DIR"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	// BcryptCost is the work factor for password hashes.
	BcryptCost int `envconfig:"BCRYPT_COST" default:"12"`
}

// Load reads an optional .env file, then configuration from environment
// variables, and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = splitCSV(cfg.CORSOriginsRaw)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c Config) validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.StorageDriver == DriverPostgres && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch c.StorageDriver {
	case DriverFile, DriverPostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverFile, DriverPostgres, c.StorageDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
