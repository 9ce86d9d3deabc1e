package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for a migration run.
// All methods are safe on a nil receiver.
type Metrics struct {
	Registry       *prometheus.Registry
	RowsRead       *prometheus.CounterVec
	RowsInserted   *prometheus.CounterVec
	Batches        *prometheus.CounterVec
	Lookups        *prometheus.CounterVec
	EntityDuration *prometheus.HistogramVec
}

// NewMetrics constructs and registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	rowsRead := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migrate_rows_read_total",
			Help: "Rows read from export files and coerced into records.",
		},
		[]string{"entity"},
	)
	rowsInserted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migrate_rows_inserted_total",
			Help: "Records acknowledged by the destination store.",
		},
		[]string{"entity"},
	)
	batches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migrate_batches_total",
			Help: "Insert calls by outcome.",
		},
		[]string{"entity", "outcome"},
	)
	lookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migrate_lookups_total",
			Help: "Enrichment lookups by outcome (hit, miss, cached, error).",
		},
		[]string{"table", "outcome"},
	)
	entityDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "migrate_entity_duration_seconds",
			Help:    "Wall time spent loading one entity type.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"entity"},
	)

	registry.MustRegister(rowsRead, rowsInserted, batches, lookups, entityDuration)

	return &Metrics{
		Registry:       registry,
		RowsRead:       rowsRead,
		RowsInserted:   rowsInserted,
		Batches:        batches,
		Lookups:        lookups,
		EntityDuration: entityDuration,
	}
}

func (m *Metrics) addRowsRead(entity string, n int) {
	if m == nil {
		return
	}
	m.RowsRead.WithLabelValues(entity).Add(float64(n))
}

func (m *Metrics) batchDone(entity string, n int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Batches.WithLabelValues(entity, "error").Inc()
		return
	}
	m.Batches.WithLabelValues(entity, "ok").Inc()
	m.RowsInserted.WithLabelValues(entity).Add(float64(n))
}

func (m *Metrics) lookup(table, outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(table, outcome).Inc()
}

func (m *Metrics) observeEntity(entity string, d time.Duration) {
	if m == nil {
		return
	}
	m.EntityDuration.WithLabelValues(entity).Observe(d.Seconds())
}
