package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with a custom variable source. An empty value counts as
// unset, so the alternate name and then the default apply.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if errs := decodeEnv(reflect.ValueOf(cfg).Elem(), getenv); len(errs) > 0 {
		return nil, fmt.Errorf("config load:\n  - %s", strings.Join(errs, "\n  - "))
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// decodeEnv fills the tagged fields of v, descending into nested sections.
// Every unparsable value is reported, not just the first.
func decodeEnv(v reflect.Value, getenv func(string) string) []string {
	var errs []string
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		if sf.Type.Kind() == reflect.Struct {
			errs = append(errs, decodeEnv(fv, getenv)...)
			continue
		}

		name := sf.Tag.Get("env")
		if name == "" {
			continue
		}

		raw := getenv(name)
		if alt := sf.Tag.Get("envAlt"); raw == "" && alt != "" {
			raw = getenv(alt)
		}
		if raw == "" {
			raw = sf.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		parsed, err := parseValue(sf.Type, raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s=%q: %v", name, raw, err))
			continue
		}
		fv.Set(parsed)
	}

	return errs
}

// parseValue converts raw into a value of type t.
func parseValue(t reflect.Type, raw string) (reflect.Value, error) {
	switch {
	case t == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid duration, want e.g. 30s or 5m")
		}
		return reflect.ValueOf(d), nil

	case t.Kind() == reflect.String:
		return reflect.ValueOf(raw).Convert(t), nil

	case t.Kind() == reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid integer")
		}
		return reflect.ValueOf(n).Convert(t), nil

	case t.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid boolean")
		}
		return reflect.ValueOf(b), nil

	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String:
		items := []string{}
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return reflect.ValueOf(items), nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported field type %s", t)
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Store validation: credentials depend on the driver
	switch c.Store.Driver {
	case DriverREST:
		if c.Store.SupabaseURL == "" {
			errs = append(errs, "SUPABASE_URL is required for the rest driver")
		} else if u, err := url.Parse(c.Store.SupabaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("SUPABASE_URL (%q) must be an http(s) URL", c.Store.SupabaseURL))
		}
		if c.Store.SupabaseKey == "" {
			errs = append(errs, "SUPABASE_SERVICE_KEY is required for the rest driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, "SQLITE_PATH is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER (%q) must be one of: rest, postgres, sqlite, memory", c.Store.Driver))
	}
	if c.Store.HTTPTimeout < 0 {
		errs = append(errs, "STORE_HTTP_TIMEOUT must be non-negative")
	}

	// Database validation
	if c.Database.MaxConns < c.Database.MinConns {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
			c.Database.MaxConns, c.Database.MinConns))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns < 0 {
		errs = append(errs, "DB_MIN_CONNS must be non-negative")
	}

	// Migration validation
	if c.Migration.BatchSize <= 0 {
		errs = append(errs, "MIGRATION_BATCH_SIZE must be positive")
	}
	if c.Migration.LookupCache < 0 {
		errs = append(errs, "MIGRATION_LOOKUP_CACHE must be non-negative")
	}

	// Server validation
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "METRICS_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "METRICS_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, "METRICS_IDLE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "METRICS_SHUTDOWN_TIMEOUT must be positive")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Credentials are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Store: {Driver: %q, SupabaseURL: %q, SupabaseKey: %s}, ",
		c.Store.Driver, c.Store.SupabaseURL, mask(c.Store.SupabaseKey)))
	b.WriteString(fmt.Sprintf("Database: {URL: %s, MaxConns: %d, MinConns: %d}, ",
		mask(c.Database.URL), c.Database.MaxConns, c.Database.MinConns))
	b.WriteString(fmt.Sprintf("SQLite: {Path: %q}, ", c.SQLite.Path))
	b.WriteString(fmt.Sprintf("Migration: {Dir: %q, BatchSize: %d, LookupCache: %d, Manifest: %q, Only: %v}, ",
		c.Migration.Dir, c.Migration.BatchSize, c.Migration.LookupCache, c.Migration.Manifest, c.Migration.Only))
	b.WriteString(fmt.Sprintf("Server: {Addr: %q}, ", c.Server.Addr))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}

func mask(secret string) string {
	if secret == "" {
		return `""`
	}
	return "[MASKED]"
}
