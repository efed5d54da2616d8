package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "blight"

// RunMetrics collects counters for a single pipeline run. A batch job has
// no scrape endpoint, so the registry is written to a node_exporter
// textfile when the run ends. All methods are safe on a nil receiver.
type RunMetrics struct {
	registry *prometheus.Registry

	rowsRead     *prometheus.CounterVec
	rowsDropped  *prometheus.CounterVec
	rowsWritten  *prometheus.CounterVec
	rowsImputed  prometheus.Counter
	stepDuration *prometheus.GaugeVec
	stepFailures *prometheus.CounterVec
	lastSuccess  prometheus.Gauge
}

// NewRunMetrics registers the run metrics on a fresh registry
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		rowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_read_total",
			Help:      "Rows read from raw input files.",
		}, []string{"file"}),
		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_dropped_total",
			Help:      "Rows removed by selection or imputation, by reason.",
		}, []string{"reason"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_written_total",
			Help:      "Rows written to processed files.",
		}, []string{"file"}),
		rowsImputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "hearing_dates_imputed_total",
			Help:      "Rows whose hearing date was imputed.",
		}),
		stepDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of each pipeline step in the last run.",
		}, []string{"step"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "step_failures_total",
			Help:      "Pipeline steps that returned an error.",
		}, []string{"step"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	m.registry.MustRegister(
		m.rowsRead,
		m.rowsDropped,
		m.rowsWritten,
		m.rowsImputed,
		m.stepDuration,
		m.stepFailures,
		m.lastSuccess,
	)
	return m
}

// Registry exposes the underlying registry
func (m *RunMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RowsRead adds n rows read from file
func (m *RunMetrics) RowsRead(file string, n int) {
	if m == nil {
		return
	}
	m.rowsRead.WithLabelValues(file).Add(float64(n))
}

// RowsDropped adds n rows removed for reason
func (m *RunMetrics) RowsDropped(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsDropped.WithLabelValues(reason).Add(float64(n))
}

// RowsWritten adds n rows written to file
func (m *RunMetrics) RowsWritten(file string, n int) {
	if m == nil {
		return
	}
	m.rowsWritten.WithLabelValues(file).Add(float64(n))
}

// RowsImputed adds n imputed hearing dates
func (m *RunMetrics) RowsImputed(n int) {
	if m == nil {
		return
	}
	m.rowsImputed.Add(float64(n))
}

// StepFinished records the duration of a step and whether it failed
func (m *RunMetrics) StepFinished(step string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(step).Set(d.Seconds())
	if err != nil {
		m.stepFailures.WithLabelValues(step).Inc()
	}
}

// MarkSuccess stamps the completion time of a successful run
func (m *RunMetrics) MarkSuccess(at time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(at.Unix()))
}

// WriteTextfile writes the registry in Prometheus text format to path.
// An empty path is a no-op.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
