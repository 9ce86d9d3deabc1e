package core

import (
	"context"
	"fmt"
	"sync"
)

// fakeStore records every insert call and serves selects from the rows it
// has accepted.
type fakeStore struct {
	mu sync.Mutex

	calls   []insertCall
	tables  map[string][]Record
	selects int

	// failInsert returns a non-nil error to reject the n-th (0-based) insert
	// call against table.
	failInsert func(table string, n int) error

	// failSelect makes every Select fail.
	failSelect error
}

type insertCall struct {
	table   string
	records []Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: make(map[string][]Record)}
}

func (s *fakeStore) Insert(_ context.Context, table string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		if c.table == table {
			n++
		}
	}
	s.calls = append(s.calls, insertCall{table: table, records: append([]Record(nil), records...)})

	if s.failInsert != nil {
		if err := s.failInsert(table, n); err != nil {
			return err
		}
	}
	s.tables[table] = append(s.tables[table], records...)
	return nil
}

func (s *fakeStore) Select(_ context.Context, table string, q Query) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selects++
	if s.failSelect != nil {
		return nil, s.failSelect
	}

	var out []Record
	for _, rec := range s.tables[table] {
		if fmt.Sprint(rec[q.Filter.Column]) != fmt.Sprint(q.Filter.Value) {
			continue
		}
		row := make(Record, len(q.Columns))
		for _, c := range q.Columns {
			row[c] = rec[c]
		}
		out = append(out, row)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) callsFor(table string) []insertCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []insertCall
	for _, c := range s.calls {
		if c.table == table {
			out = append(out, c)
		}
	}
	return out
}
