package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/pingmigrate/internal/config"
	"github.com/JonMunkholm/pingmigrate/internal/core"
	_ "github.com/JonMunkholm/pingmigrate/internal/core/tables" // Register all entity types
	"github.com/JonMunkholm/pingmigrate/internal/logging"
	"github.com/JonMunkholm/pingmigrate/internal/manifest"
	"github.com/JonMunkholm/pingmigrate/internal/store/memory"
	"github.com/JonMunkholm/pingmigrate/internal/store/postgres"
	"github.com/JonMunkholm/pingmigrate/internal/store/rest"
	"github.com/JonMunkholm/pingmigrate/internal/store/sqlite"
	"github.com/JonMunkholm/pingmigrate/internal/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists; real environment variables win
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, nil)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrator, err := buildMigrator(cfg)
	if err != nil {
		slog.Error("failed to prepare migration", "error", err)
		return 1
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		return 1
	}
	defer closeStore()

	metrics := core.NewMetrics()
	resolver, err := core.NewResolver(store, cfg.Migration.LookupCache, metrics)
	if err != nil {
		slog.Error("failed to create lookup resolver", "error", err)
		return 1
	}
	migrator.Loader = &core.Loader{
		Store:     store,
		BatchSize: cfg.Migration.BatchSize,
		Resolver:  resolver,
		Metrics:   metrics,
	}

	slog.Info("entity types registered", "count", core.Count(), "driver", cfg.Store.Driver)

	var server *web.Server
	if cfg.Server.Addr != "" {
		server = web.NewServer(migrator, metrics.Registry)
		go func() {
			timeouts := web.Timeouts{
				Read:  cfg.Server.ReadTimeout,
				Write: cfg.Server.WriteTimeout,
				Idle:  cfg.Server.IdleTimeout,
			}
			if err := server.Start(cfg.Server.Addr, timeouts); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("status server stopped", "error", err)
			}
		}()
	}

	report := migrator.Run(ctx)

	if err := core.WriteSummary(os.Stdout, report); err != nil {
		slog.Error("failed to write summary", "error", err)
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}

	if ctx.Err() != nil {
		slog.Warn("migration interrupted")
		return 1
	}
	return 0
}

// buildMigrator applies the optional manifest on top of the configured
// directory and entity subset.
func buildMigrator(cfg *config.Config) (*core.Migrator, error) {
	m := &core.Migrator{
		Dir:  cfg.Migration.Dir,
		Only: cfg.Migration.Only,
	}
	for _, key := range m.Only {
		if _, ok := core.Get(key); !ok {
			return nil, fmt.Errorf("MIGRATION_ONLY: unknown entity %q (known: %v)", key, core.Keys())
		}
	}

	if cfg.Migration.Manifest == "" {
		return m, nil
	}

	mf, err := manifest.Load(cfg.Migration.Manifest, core.Keys())
	if err != nil {
		return nil, err
	}
	if mf.Dir != "" {
		m.Dir = mf.Dir
	}
	if len(mf.Only) > 0 {
		m.Only = mf.Only
	}
	m.Files = mf.Files

	slog.Info("manifest loaded",
		"path", filepath.Clean(cfg.Migration.Manifest),
		"dir", m.Dir,
		"only", m.Only,
		"files", len(m.Files),
	)
	return m, nil
}

// openStore connects the destination selected by STORE_DRIVER. The returned
// func releases it and is never nil.
func openStore(ctx context.Context, cfg *config.Config) (core.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.DriverREST:
		s, err := rest.New(rest.Options{
			URL:     cfg.Store.SupabaseURL,
			Key:     cfg.Store.SupabaseKey,
			Timeout: cfg.Store.HTTPTimeout,
		})
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.DriverPostgres:
		s, err := postgres.Open(ctx, postgres.PoolConfig{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			SimpleProtocol:  cfg.Database.SimpleProtocol,
		})
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Warn("failed to close sqlite store", "error", err)
			}
		}, nil

	case config.DriverMemory:
		slog.Warn("memory store selected: records are discarded when the run ends")
		return memory.New(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
