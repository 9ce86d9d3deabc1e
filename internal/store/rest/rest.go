// Package rest implements core.Store against the PostgREST API that a
// Supabase project exposes under /rest/v1, through postgrest-go.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

const schema = "public"

// Options configures a Store.
type Options struct {
	URL     string        // Project URL, e.g. https://xyz.supabase.co
	Key     string        // Service role key; bypasses row level security
	Timeout time.Duration // Per request; 0 means none
}

// Store talks to PostgREST through a postgrest-go client.
type Store struct {
	client  *postgrest.Client
	timeout time.Duration
}

// New creates a Store. The URL must be absolute.
func New(opts Options) (*Store, error) {
	base, err := url.Parse(strings.TrimRight(opts.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("rest: parse url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("rest: url %q is not absolute", opts.URL)
	}

	client := postgrest.NewClient(base.JoinPath("rest", "v1").String(), schema, map[string]string{
		"apikey":        opts.Key,
		"Authorization": "Bearer " + opts.Key,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("rest: %w", client.ClientError)
	}

	return &Store{client: client, timeout: opts.Timeout}, nil
}

// Insert sends records as one JSON array with return=minimal.
//
// PostgREST requires every object of a bulk insert to carry the same keys,
// so records are padded to the union of the batch's keys. A key absent from
// a record is therefore written as NULL, like the Python client's
// default_to_null.
func (s *Store) Insert(ctx context.Context, table string, records []core.Record) error {
	if len(records) == 0 {
		return nil
	}

	_, err := s.execute(ctx, s.client.From(table).Insert(pad(records), false, "", "minimal", ""))
	if err != nil {
		return fmt.Errorf("rest: insert %s: %w", table, err)
	}
	return nil
}

// Select issues GET /rest/v1/{table}?select=...&{col}=eq.{value}&limit=n.
func (s *Store) Select(ctx context.Context, table string, q core.Query) ([]core.Record, error) {
	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}

	query := s.client.From(table).Select(columns, "", false)
	if q.Filter.Column != "" {
		query = query.Eq(q.Filter.Column, fmt.Sprint(q.Filter.Value))
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit, "")
	}

	body, err := s.execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("rest: select %s: %w", table, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("rest: decode %s: %w", table, err)
	}

	out := make([]core.Record, len(rows))
	for i, row := range rows {
		rec := make(core.Record, len(row))
		for k, v := range row {
			rec[k] = normalize(v)
		}
		out[i] = rec
	}
	return out, nil
}

type result struct {
	body []byte
	err  error
}

// execute runs f, bounded by ctx and the configured timeout. The client
// takes no context, so an abandoned request finishes in the background.
func (s *Store) execute(ctx context.Context, f *postgrest.FilterBuilder) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan result, 1)
	go func() {
		body, _, err := f.Execute()
		done <- result{body: body, err: err}
	}()

	select {
	case r := <-done:
		return r.body, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request timeout after %s: %w", s.timeout, ctx.Err())
		}
		return nil, ctx.Err()
	}
}

// pad returns copies of records that all carry the batch's key union.
func pad(records []core.Record) []core.Record {
	cols := core.Columns(records)
	out := make([]core.Record, len(records))
	for i, rec := range records {
		full := make(core.Record, len(cols))
		for _, c := range cols {
			full[c] = rec[c]
		}
		out[i] = full
	}
	return out
}

// normalize converts json.Number to int64 when integral, float64 otherwise.
func normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
