package core

import (
	"context"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/pingmigrate/internal/logging"
)

// ProgressFunc is called whenever an entity load changes phase or completes a batch.
type ProgressFunc func(EntityResult)

// Loader moves one export file into its destination table.
type Loader struct {
	Store     Store
	BatchSize int
	Resolver  *Resolver // Optional; required only for entities with Lookups
	Metrics   *Metrics
	Progress  ProgressFunc
}

// Load reads the export at path, enriches and delivers its records.
//
// Batches are sent strictly in sequence. The first failed batch aborts the
// remaining ones; batches already sent stay in the store. The outcome,
// including any error, is returned in the result rather than as an error
// so callers can continue with other entity types.
func (l *Loader) Load(ctx context.Context, def EntityDefinition, path string) EntityResult {
	start := time.Now()
	logger := logging.WithFields(ctx, "entity", def.Key, "table", def.Table, "file", filepath.Base(path))

	res := EntityResult{
		Entity: def.Key,
		Label:  def.Label,
		Table:  def.Table,
		File:   path,
		Phase:  PhaseReading,
	}
	l.notify(res)

	fail := func(err error) EntityResult {
		res.Err = err
		res.Error = err.Error()
		res.Phase = PhaseFailed
		res.Duration = time.Since(start)
		l.Metrics.observeEntity(def.Key, res.Duration)
		l.notify(res)
		logger.Error("entity load failed",
			"error", err,
			"hint", FormatUserError(err),
			"inserted", res.Inserted,
		)
		return res
	}

	records, err := ReadRecords(def, path)
	if err != nil {
		return fail(err)
	}
	res.Rows = len(records)
	l.Metrics.addRowsRead(def.Key, len(records))
	logger.Debug("records built", "rows", len(records))

	if len(def.Lookups) > 0 && l.Resolver != nil {
		for _, rec := range records {
			l.Resolver.Enrich(ctx, logger, rec, def.Lookups)
		}
	}

	if len(records) == 0 {
		res.Phase = PhaseComplete
		res.Duration = time.Since(start)
		l.Metrics.observeEntity(def.Key, res.Duration)
		l.notify(res)
		logger.Info("no rows to import")
		return res
	}

	res.Phase = PhaseInserting
	l.notify(res)

	for _, b := range Chunk(records, l.BatchSize) {
		if err := ctx.Err(); err != nil {
			return fail(&BatchError{Entity: def.Key, Table: def.Table, Start: b.Start, End: b.End, Err: err})
		}

		err := l.Store.Insert(ctx, def.Table, b.Records)
		l.Metrics.batchDone(def.Key, len(b.Records), err)
		if err != nil {
			return fail(&BatchError{Entity: def.Key, Table: def.Table, Start: b.Start, End: b.End, Err: err})
		}

		res.Batches++
		res.Inserted += len(b.Records)
		l.notify(res)
		logger.Info("imported rows", "from", b.Start, "to", b.End)
	}

	res.Phase = PhaseComplete
	res.Duration = time.Since(start)
	l.Metrics.observeEntity(def.Key, res.Duration)
	l.notify(res)
	logger.Info("entity imported",
		"total", res.Inserted,
		"batches", res.Batches,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res
}

func (l *Loader) notify(res EntityResult) {
	if l.Progress != nil {
		l.Progress(res)
	}
}
