// Package sqlite implements core.Store on a local SQLite file, for
// rehearsing a migration without touching the hosted database.
//
// Tables and columns are created on first insert with no declared type, so
// any export can be loaded as-is. JSON documents and arrays are stored as
// JSON text, booleans as 0/1.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

// Store wraps a single-connection SQLite database.
type Store struct {
	conn *sql.DB

	mu      sync.Mutex
	columns map[string]map[string]bool // table -> known columns
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One writer; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	return &Store{conn: conn, columns: make(map[string]map[string]bool)}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Insert writes records in one transaction. Each record lists only its own
// keys, so absent fields take the column default.
func (s *Store) Insert(ctx context.Context, table string, records []core.Record) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	known, err := s.ensureColumns(ctx, tx, table, core.Columns(records))
	if err != nil {
		return err
	}

	stmts := make(map[string]*sql.Stmt)
	defer func() {
		for _, st := range stmts {
			st.Close()
		}
	}()

	for i, rec := range records {
		cols := core.Columns([]core.Record{rec})
		key := strings.Join(cols, "\x00")

		st, ok := stmts[key]
		if !ok {
			st, err = tx.PrepareContext(ctx, insertSQL(table, cols))
			if err != nil {
				return fmt.Errorf("sqlite: insert %s: %w", table, err)
			}
			stmts[key] = st
		}

		args := make([]any, len(cols))
		for j, c := range cols {
			args[j], err = sqliteValue(rec[c])
			if err != nil {
				return fmt.Errorf("sqlite: insert %s: record %d field %s: %w", table, i+1, c, err)
			}
		}
		if _, err := st.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("sqlite: insert %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit %s: %w", table, err)
	}
	s.columns[table] = known
	return nil
}

// Select runs an equality query. Integer and real cells come back as int64
// and float64, text as string.
func (s *Store) Select(ctx context.Context, table string, q core.Query) ([]core.Record, error) {
	query, args := selectSQL(table, q)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: select %s: %w", table, err)
	}

	var out []core.Record
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan %s: %w", table, err)
		}

		rec := make(core.Record, len(names))
		for i, n := range names {
			if b, ok := vals[i].([]byte); ok {
				rec[n] = string(b)
				continue
			}
			rec[n] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: select %s: %w", table, err)
	}
	return out, nil
}

// ensureColumns creates table and adds any missing columns, returning the
// full column set. Caller holds s.mu.
func (s *Store) ensureColumns(ctx context.Context, tx *sql.Tx, table string, cols []string) (map[string]bool, error) {
	known := make(map[string]bool)
	if cached, ok := s.columns[table]; ok {
		for c := range cached {
			known[c] = true
		}
	} else {
		rows, err := tx.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
		if err != nil {
			return nil, fmt.Errorf("sqlite: inspect %s: %w", table, err)
		}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return nil, fmt.Errorf("sqlite: inspect %s: %w", table, err)
			}
			known[name] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("sqlite: inspect %s: %w", table, err)
		}

		if len(known) == 0 {
			quoted := make([]string, len(cols))
			for i, c := range cols {
				quoted[i] = quote(c)
				known[c] = true
			}
			if _, err := tx.ExecContext(ctx, "CREATE TABLE "+quote(table)+" ("+strings.Join(quoted, ", ")+")"); err != nil {
				return nil, fmt.Errorf("sqlite: create %s: %w", table, err)
			}
		}
	}

	for _, c := range cols {
		if known[c] {
			continue
		}
		if _, err := tx.ExecContext(ctx, "ALTER TABLE "+quote(table)+" ADD COLUMN "+quote(c)); err != nil {
			return nil, fmt.Errorf("sqlite: add column %s.%s: %w", table, c, err)
		}
		known[c] = true
	}
	return known, nil
}

func insertSQL(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	return "INSERT INTO " + quote(table) + " (" + strings.Join(quoted, ", ") + ") VALUES (" + ph + ")"
}

func selectSQL(table string, q core.Query) (string, []any) {
	sel := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, len(q.Columns))
		for i, c := range q.Columns {
			quoted[i] = quote(c)
		}
		sel = strings.Join(quoted, ", ")
	}

	query := "SELECT " + sel + " FROM " + quote(table)
	var args []any
	if q.Filter.Column != "" {
		query += " WHERE " + quote(q.Filter.Column) + " = ?"
		v, _ := sqliteValue(q.Filter.Value)
		args = append(args, v)
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return query, args
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqliteValue converts a record value to a type the driver stores natively.
func sqliteValue(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string, int64, float64, int, int32:
		return t, nil
	case core.JSON:
		return t.Value()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
}
