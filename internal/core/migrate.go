package core

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/pingmigrate/internal/logging"
)

// Report is the outcome of one migration run.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []EntityResult
}

// Failed returns the results of entity types whose load was aborted.
func (r *Report) Failed() []EntityResult {
	var failed []EntityResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Inserted returns the number of records acknowledged across all entity types.
func (r *Report) Inserted() int {
	total := 0
	for _, res := range r.Results {
		total += res.Inserted
	}
	return total
}

// Migrator runs the loader once per registered entity type, in dependency order.
type Migrator struct {
	Loader *Loader

	// Dir holds the export files.
	Dir string

	// Files overrides the default file name per entity key.
	Files map[string]string

	// Only restricts the run to these entity keys. Empty means all.
	// Dependency order is kept regardless of the order given here.
	Only []string

	// Entities defaults to All() when nil.
	Entities []EntityDefinition

	mu     sync.RWMutex
	status Report
}

// Run loads every entity type sequentially. A failure in one entity type
// never stops the others, and Run itself never fails: every outcome is in
// the returned report.
func (m *Migrator) Run(ctx context.Context) *Report {
	runID := uuid.NewString()
	ctx = logging.WithRun(ctx, runID)
	logger := logging.FromContext(ctx)

	defs := m.Entities
	if defs == nil {
		defs = All()
	}

	report := &Report{RunID: runID, Started: time.Now()}
	for _, def := range defs {
		res := EntityResult{
			Entity: def.Key,
			Label:  def.Label,
			Table:  def.Table,
			File:   m.path(def),
			Phase:  PhasePending,
		}
		if !m.selected(def.Key) {
			res.Phase = PhaseSkipped
		}
		report.Results = append(report.Results, res)
	}
	m.setStatus(report)

	logger.Info("migration started", "entities", len(defs), "dir", m.Dir)

	loader := *m.Loader
	for i, def := range defs {
		if report.Results[i].Phase == PhaseSkipped {
			logger.Info("entity skipped", "entity", def.Key)
			continue
		}

		idx := i
		loader.Progress = func(res EntityResult) {
			m.updateStatus(idx, res)
			if m.Loader.Progress != nil {
				m.Loader.Progress(res)
			}
		}

		logger.Info("migrating entity", "entity", def.Key, "label", def.Label)
		report.Results[i] = loader.Load(ctx, def, report.Results[i].File)
	}

	report.Finished = time.Now()
	m.setStatus(report)

	logger.Info("migration finished",
		"inserted", report.Inserted(),
		"failed_entities", len(report.Failed()),
		"duration_ms", report.Finished.Sub(report.Started).Milliseconds(),
	)
	return report
}

// Status returns a snapshot of the current run, safe for concurrent use.
func (m *Migrator) Status() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.status
	snap.Results = append([]EntityResult(nil), m.status.Results...)
	return snap
}

func (m *Migrator) setStatus(r *Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = *r
	m.status.Results = append([]EntityResult(nil), r.Results...)
}

func (m *Migrator) updateStatus(i int, res EntityResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < len(m.status.Results) {
		m.status.Results[i] = res
	}
}

func (m *Migrator) path(def EntityDefinition) string {
	name := def.File
	if override, ok := m.Files[def.Key]; ok && override != "" {
		name = override
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.Dir, name)
}

func (m *Migrator) selected(key string) bool {
	if len(m.Only) == 0 {
		return true
	}
	for _, k := range m.Only {
		if k == key {
			return true
		}
	}
	return false
}

// WriteSummary prints the closing banner of a run. It lists every entity type
// for manual verification instead of claiming which ones succeeded; the
// per-entity outcome is in the log.
func WriteSummary(w io.Writer, r *Report) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString("\n" + rule + "\n")
	b.WriteString("MIGRATION COMPLETE\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Run: %s\n\n", r.RunID)
	b.WriteString("Summary:\n")
	for _, res := range r.Results {
		if res.Phase == PhaseSkipped {
			fmt.Fprintf(&b, "   - %s: skipped\n", res.Label)
			continue
		}
		fmt.Fprintf(&b, "   - %s: Check table %s\n", res.Label, res.Table)
	}
	b.WriteString("\nNext Steps:\n")
	b.WriteString("   1. Open the table editor of the destination database\n")
	b.WriteString("   2. Verify data looks correct\n")
	b.WriteString("   3. Check for any missing relationships\n")
	b.WriteString("   4. Set up Storage buckets for images\n")
	b.WriteString("   5. Configure Row Level Security policies\n")

	_, err := io.WriteString(w, b.String())
	return err
}
