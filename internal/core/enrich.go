package core

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLookupCacheSize bounds the number of memoised lookup results.
const DefaultLookupCacheSize = 1024

type lookupKey struct {
	table  string
	match  string
	target string
	value  string
}

type lookupResult struct {
	value any
	found bool
}

// Resolver performs best-effort lookups against already loaded tables.
//
// Results of successful queries (match or no match) are memoised; failed
// queries are not, so a transient error is retried for the next record.
// The target table is assumed to be static while callers resolve against it.
type Resolver struct {
	store   Store
	cache   *lru.Cache[lookupKey, lookupResult]
	metrics *Metrics
}

// NewResolver creates a Resolver. cacheSize <= 0 disables memoisation.
func NewResolver(store Store, cacheSize int, metrics *Metrics) (*Resolver, error) {
	r := &Resolver{store: store, metrics: metrics}
	if cacheSize > 0 {
		cache, err := lru.New[lookupKey, lookupResult](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("lookup cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Enrich applies each lookup to rec. It never fails: when the source field
// is empty, nothing matches, or the query errors, rec is left without the
// Into field.
func (r *Resolver) Enrich(ctx context.Context, logger *slog.Logger, rec Record, lookups []Lookup) {
	for _, lk := range lookups {
		src, ok := rec[lk.Source]
		if !ok || src == nil || src == "" {
			continue
		}

		value, found, err := r.resolve(ctx, lk, src)
		if err != nil {
			logger.Debug("lookup failed",
				"table", lk.Table,
				"match", lk.Match,
				"value", src,
				"error", err,
			)
			continue
		}
		if found {
			rec[lk.Into] = value
		}
	}
}

func (r *Resolver) resolve(ctx context.Context, lk Lookup, src any) (any, bool, error) {
	key := lookupKey{table: lk.Table, match: lk.Match, target: lk.Target, value: fmt.Sprint(src)}

	if r.cache != nil {
		if res, ok := r.cache.Get(key); ok {
			r.metrics.lookup(lk.Table, "cached")
			return res.value, res.found, nil
		}
	}

	rows, err := r.store.Select(ctx, lk.Table, Eq(lk.Match, src, lk.Target).WithLimit(1))
	if err != nil {
		r.metrics.lookup(lk.Table, "error")
		return nil, false, err
	}

	res := lookupResult{}
	if len(rows) > 0 {
		if v, ok := rows[0][lk.Target]; ok && v != nil {
			res = lookupResult{value: v, found: true}
		}
	}

	if res.found {
		r.metrics.lookup(lk.Table, "hit")
	} else {
		r.metrics.lookup(lk.Table, "miss")
	}

	if r.cache != nil {
		r.cache.Add(key, res)
	}
	return res.value, res.found, nil
}
