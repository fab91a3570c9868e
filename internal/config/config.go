package config

import (
	"github.com/caarlos0/env/v11"

	"geo-bidder/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Catalog selects where campaigns are loaded from at startup.
	Catalog configs.Catalog `envPrefix:"CATALOG_"`

	// Index tunes the spatial grid.
	Index configs.Index `envPrefix:"INDEX_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct. It is only used when
	// the catalog source is postgres.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Kafka configures the spend event publisher.
	Kafka configs.Kafka `envPrefix:"KAFKA_"`

	// WarmupFile is an optional JSON array of bid requests evaluated
	// against a throw-away ledger before the server starts.
	WarmupFile string `env:"WARMUP_FILE"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
