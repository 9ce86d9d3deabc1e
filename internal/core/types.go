package core

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"sort"
	"time"
)

// Record is one typed row ready for delivery.
// A key that is absent means "field not sent"; a key holding nil is an explicit NULL.
type Record map[string]any

// Columns returns the union of keys across records, sorted for stable SQL generation.
func Columns(records []Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// JSON marks a value decoded from a JSON-encoded cell.
// Stores write it to json/jsonb columns as the encoded document.
type JSON struct {
	V any
}

// MarshalJSON encodes the wrapped value, so REST payloads carry the document itself.
func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

// Value implements driver.Valuer for database/sql and pgx.
func (j JSON) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Store is the destination table store consumed by the loader.
type Store interface {
	// Insert writes records to table as one bulk operation.
	Insert(ctx context.Context, table string, records []Record) error

	// Select returns rows of table matching q.
	Select(ctx context.Context, table string, q Query) ([]Record, error)
}

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Query describes a simple filtered read.
type Query struct {
	Columns []string // Columns to return; empty means all
	Filter  Filter
	Limit   int // 0 means no limit
}

// Eq builds a Query selecting columns where column = value.
func Eq(column string, value any, columns ...string) Query {
	return Query{Columns: columns, Filter: Filter{Column: column, Value: value}}
}

// WithLimit returns a copy of q with the limit set.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Coercer converts one raw CSV cell into a typed value. It never fails:
// unusable input yields nil.
type Coercer func(raw string) any

// Mapping pairs a destination field with its source column and coercion.
type Mapping struct {
	Field    string  // Destination field name
	Column   string  // Source header, matched exactly (case and space sensitive)
	Coerce   Coercer // Coercion applied to the cell
	Optional bool    // Missing column reads as "" instead of failing the load
}

// Lookup enriches a record with a value read from an already loaded table.
//
// When rec[Source] is set, the loader selects Target from Table where
// Match equals it, and stores the first result in rec[Into].
type Lookup struct {
	Source string
	Table  string
	Match  string
	Target string
	Into   string
}

// EntityDefinition declares how one legacy export maps to one destination table.
type EntityDefinition struct {
	Key     string // Unique identifier: "offers"
	Label   string // Display name: "Offers"
	Table   string // Destination table
	File    string // Default export file name
	Order   int    // Position in the dependency order
	Fields  []Mapping
	Lookups []Lookup
}

// RequiredColumns returns the source headers the file must contain.
func (d EntityDefinition) RequiredColumns() []string {
	cols := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		if !f.Optional {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// EntityPhase indicates the current stage of an entity load.
type EntityPhase string

const (
	PhasePending   EntityPhase = "pending"
	PhaseReading   EntityPhase = "reading"
	PhaseInserting EntityPhase = "inserting"
	PhaseComplete  EntityPhase = "complete"
	PhaseFailed    EntityPhase = "failed"
	PhaseSkipped   EntityPhase = "skipped"
)

// EntityResult is the outcome of loading one entity type.
type EntityResult struct {
	Entity   string
	Label    string
	Table    string
	File     string
	Phase    EntityPhase
	Rows     int // Records built from the file
	Inserted int // Records acknowledged by the store
	Batches  int // Successful insert calls
	Duration time.Duration
	Err      error  `json:"-"`
	Error    string `json:",omitempty"`
}

// Failed reports whether the load was aborted.
func (r EntityResult) Failed() bool {
	return r.Err != nil
}
