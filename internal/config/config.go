// Package config provides centralized configuration management for the migrator.
// It loads configuration from environment variables with sensible defaults and
// validates all settings before any file is read, so a run never starts
// half-configured.
package config

import "time"

// Store drivers.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Store     StoreConfig
	Database  DatabaseConfig
	SQLite    SQLiteConfig
	Migration MigrationConfig
	Server    ServerConfig
	Logging   LoggingConfig
}

// StoreConfig selects the destination and holds the REST settings.
type StoreConfig struct {
	// Driver is one of rest, postgres, sqlite, memory (default: rest)
	Driver string `env:"STORE_DRIVER" default:"rest"`

	// SupabaseURL is the project URL (required for rest)
	SupabaseURL string `env:"SUPABASE_URL"`

	// SupabaseKey is the service role key (required for rest)
	// Supports both SUPABASE_SERVICE_KEY and SUPABASE_KEY env vars
	SupabaseKey string `env:"SUPABASE_SERVICE_KEY" envAlt:"SUPABASE_KEY"`

	// HTTPTimeout bounds each REST request (default: 0s, no timeout)
	HTTPTimeout time.Duration `env:"STORE_HTTP_TIMEOUT" default:"0s"`
}

// DatabaseConfig holds direct Postgres connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required for postgres)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// SimpleProtocol disables prepared statements for transaction poolers (default: false)
	SimpleProtocol bool `env:"DB_SIMPLE_PROTOCOL" default:"false"`
}

// SQLiteConfig holds the local rehearsal database settings.
type SQLiteConfig struct {
	// Path is the database file (default: migration.db)
	Path string `env:"SQLITE_PATH" default:"migration.db"`
}

// MigrationConfig holds the run settings.
type MigrationConfig struct {
	// Dir holds the CSV exports (default: current directory)
	Dir string `env:"MIGRATION_DIR" default:"."`

	// BatchSize is the number of records per insert call (default: 50)
	BatchSize int `env:"MIGRATION_BATCH_SIZE" default:"50"`

	// LookupCache is the number of memoised lookup results, 0 disables (default: 1024)
	LookupCache int `env:"MIGRATION_LOOKUP_CACHE" default:"1024"`

	// Manifest is an optional YAML manifest path
	Manifest string `env:"MIGRATION_MANIFEST"`

	// Only is a comma-separated list of entity keys to load
	Only []string `env:"MIGRATION_ONLY"`
}

// ServerConfig holds the optional status endpoint settings.
type ServerConfig struct {
	// Addr enables the status and metrics endpoint when set, e.g. :9090
	Addr string `env:"METRICS_ADDR"`

	// ReadTimeout is the maximum duration for reading a request (default: 10s)
	ReadTimeout time.Duration `env:"METRICS_READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"METRICS_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the maximum keep-alive idle time (default: 60s)
	IdleTimeout time.Duration `env:"METRICS_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 5s)
	ShutdownTimeout time.Duration `env:"METRICS_SHUTDOWN_TIMEOUT" default:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
