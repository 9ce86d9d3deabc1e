// Package postgres implements core.Store on a pgx connection pool, for a
// direct Postgres or Supabase database URL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

// maxParams is the Postgres limit on bind parameters per statement.
const maxParams = 65535

// PoolConfig holds connection pool settings.
type PoolConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration

	// SimpleProtocol disables prepared statements, for transaction-mode
	// poolers such as Supavisor on port 6543.
	SimpleProtocol bool
}

// Store writes records with multi-row INSERT statements.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects a pool and verifies it with a ping.
func Open(ctx context.Context, cfg PoolConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse database URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = int32(cfg.MinConns)
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.SimpleProtocol {
		poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"), "max_conns", poolConfig.MaxConns)
	} else {
		slog.Info("connected to database")
	}

	return New(pool), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Insert writes records as one statement, so a batch lands entirely or not at all.
func (s *Store) Insert(ctx context.Context, table string, records []core.Record) error {
	if len(records) == 0 {
		return nil
	}

	sql, args, err := buildInsert(table, records)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("postgres: insert %s: %w", table, err)
	}
	return nil
}

// Select runs an equality query and returns rows as column maps.
func (s *Store) Select(ctx context.Context, table string, q core.Query) ([]core.Record, error) {
	sql, args := buildSelect(table, q)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: select %s: %w", table, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("postgres: select %s: %w", table, err)
	}

	out := make([]core.Record, len(maps))
	for i, m := range maps {
		out[i] = core.Record(m)
	}
	return out, nil
}

// buildInsert renders INSERT INTO t (cols) VALUES (...), (...).
// A column absent from a record is written as DEFAULT; a nil value binds NULL.
func buildInsert(table string, records []core.Record) (string, []any, error) {
	cols := core.Columns(records)
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("postgres: insert %s: records have no fields", table)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(ident(table))
	b.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ident(c))
	}
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(records)*len(cols))
	for i, rec := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, c := range cols {
			if j > 0 {
				b.WriteString(", ")
			}
			v, ok := rec[c]
			if !ok {
				b.WriteString("DEFAULT")
				continue
			}
			args = append(args, v)
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteByte(')')
	}

	if len(args) > maxParams {
		return "", nil, fmt.Errorf("postgres: insert %s: %d parameters exceed the limit of %d, lower the batch size",
			table, len(args), maxParams)
	}
	return b.String(), args, nil
}

// buildSelect renders SELECT cols FROM t [WHERE col = $1] [LIMIT n].
func buildSelect(table string, q core.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(q.Columns) == 0 {
		b.WriteString("*")
	} else {
		for i, c := range q.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ident(c))
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(ident(table))

	var args []any
	if q.Filter.Column != "" {
		b.WriteString(" WHERE ")
		b.WriteString(ident(q.Filter.Column))
		b.WriteString(" = $1")
		args = append(args, q.Filter.Value)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args
}

// ident quotes a possibly schema-qualified identifier.
func ident(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
