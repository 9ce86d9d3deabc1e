// Package memory provides an in-process core.Store for dry runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

// Store keeps inserted records per table. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]core.Record
}

// New creates an empty Store.
func New() *Store {
	return &Store{tables: make(map[string][]core.Record)}
}

// Insert appends copies of records to table.
func (s *Store) Insert(ctx context.Context, table string, records []core.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		cp := make(core.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		s.tables[table] = append(s.tables[table], cp)
	}
	return nil
}

// Select returns rows of table whose filter column equals the filter value.
// Values are compared by their printed form, so int64(7) matches "7".
// An unknown table yields no rows.
func (s *Store) Select(ctx context.Context, table string, q core.Query) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	want := fmt.Sprint(q.Filter.Value)
	var out []core.Record
	for _, rec := range s.tables[table] {
		if q.Filter.Column != "" {
			v, ok := rec[q.Filter.Column]
			if !ok || v == nil || fmt.Sprint(v) != want {
				continue
			}
		}
		out = append(out, project(rec, q.Columns))
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// Rows returns a copy of the records stored in table.
func (s *Store) Rows(table string) []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Record(nil), s.tables[table]...)
}

// Tables returns the names of tables holding at least one record, sorted.
func (s *Store) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tables))
	for name, rows := range s.tables {
		if len(rows) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func project(rec core.Record, columns []string) core.Record {
	if len(columns) == 0 {
		cp := make(core.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		return cp
	}
	out := make(core.Record, len(columns))
	for _, c := range columns {
		if v, ok := rec[c]; ok {
			out[c] = v
		}
	}
	return out
}
