package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TrackerMetrics contadores de operación del tracker (sync e ingesta).
// Todos los métodos toleran receptor nil para que los use cases puedan
// ejecutarse sin registro (tests, herramientas).
type TrackerMetrics struct {
	syncDuration *prometheus.HistogramVec
	syncTotal    *prometheus.CounterVec
	syncStale    prometheus.Counter
	ingestRows   *prometheus.CounterVec
}

// NewTrackerMetrics registra las métricas del tracker en el registerer indicado.
func NewTrackerMetrics(reg prometheus.Registerer) *TrackerMetrics {
	if reg == nil {
		return &TrackerMetrics{}
	}
	syncDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tracker_sync_duration_seconds",
		Help:    "Duración del ciclo push+fetch+replace contra el remote store.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	syncTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_sync_total",
		Help: "Sincronizaciones ejecutadas por resultado (ok, error).",
	}, []string{"result"})
	syncStale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracker_sync_stale_discarded_total",
		Help: "Respuestas de sync descartadas por llegar con generación obsoleta.",
	})
	ingestRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_ingest_rows_total",
		Help: "Filas de extracción procesadas por destino (merged, skipped).",
	}, []string{"outcome"})
	reg.MustRegister(syncDuration, syncTotal, syncStale, ingestRows)
	return &TrackerMetrics{
		syncDuration: syncDuration,
		syncTotal:    syncTotal,
		syncStale:    syncStale,
		ingestRows:   ingestRows,
	}
}

// ObserveSync registra una sincronización terminada con su resultado ("ok" o "error").
func (m *TrackerMetrics) ObserveSync(result string, d time.Duration) {
	if m == nil || m.syncTotal == nil {
		return
	}
	m.syncTotal.WithLabelValues(result).Inc()
	m.syncDuration.WithLabelValues(result).Observe(d.Seconds())
}

// IncStaleSync incrementa el contador de syncs descartados por obsoletos.
func (m *TrackerMetrics) IncStaleSync() {
	if m == nil || m.syncStale == nil {
		return
	}
	m.syncStale.Inc()
}

// AddIngested suma filas fusionadas y descartadas de un lote de extracción.
func (m *TrackerMetrics) AddIngested(merged, skipped int) {
	if m == nil || m.ingestRows == nil {
		return
	}
	m.ingestRows.WithLabelValues("merged").Add(float64(merged))
	m.ingestRows.WithLabelValues("skipped").Add(float64(skipped))
}
