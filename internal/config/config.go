// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional values (pool tuning, timeouts, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/lightbnb/internal/validation"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "LIGHTBNB_"

// ServiceName labels logs and APM data emitted by this application.
const ServiceName = "lightbnb"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters, pool tuning
// and the timeouts applied at the pool boundary.
//
// Durations accept strings such as "30s" or "5m".
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required,min=1,max=65535"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int32         `koanf:"max_open_conns" validate:"min=1"`
	MinIdleConns    int32         `koanf:"min_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"min=0"`

	// ConnectTimeout bounds dialing a new connection.
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"min=1s"`

	// QueryTimeout bounds every statement. It is applied both as a client
	// side context deadline and as the server side statement_timeout.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"min=1ms"`
}

// sections lists nested config blocks whose names contain underscores or
// dots, longest first, so env names can be split unambiguously.
var sections = []string{
	"observability_new_relic",
	"observability_logging",
	"observability",
	"database",
	"primary",
}

// envKey converts an environment variable name into a koanf key path.
//
//	LIGHTBNB_DATABASE_SSL_MODE          -> database.ssl_mode
//	LIGHTBNB_OBSERVABILITY_LOGGING_LEVEL -> observability.logging.level
//
// Names that do not start with a known section are returned lowercased
// and will simply be ignored by Unmarshal.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			path := strings.ReplaceAll(section, "_new_relic", ".new_relic")
			path = strings.ReplaceAll(path, "_logging", ".logging")
			return path + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Default returns a Config populated with every optional value.
// Required values (credentials, host, name) are left empty.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MinIdleConns:    0,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			ConnectTimeout:  5 * time.Second,
			QueryTimeout:    10 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// on top of Default(), validates it, and returns the resulting config.
//
// Service name and environment on the observability block are always
// derived from the primary block.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validation.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
