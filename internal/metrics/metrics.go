// Package metrics defines Prometheus metrics for import runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"projimport/internal/diagnostic"
	"projimport/internal/entity"
)

// Record outcomes.
const (
	OutcomeProduced = "produced"
	OutcomeDropped  = "dropped"
	OutcomeFailed   = "failed"
)

// Metrics holds the counters of an import run. Register it with a registry
// to expose them.
type Metrics struct {
	RecordsTotal     *prometheus.CounterVec
	DiagnosticsTotal *prometheus.CounterVec
	PassDuration     *prometheus.HistogramVec
}

// New creates unregistered metrics.
func New() *Metrics {
	return &Metrics{
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projimport_records_total",
				Help: "Transformed records by entity kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		DiagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projimport_diagnostics_total",
				Help: "Reported diagnostics by entity kind, severity and code",
			},
			[]string{"kind", "severity", "code"},
		),
		PassDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "projimport_pass_duration_seconds",
				Help:    "Duration of one entity pass in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
}

// Register registers every metric with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.RecordsTotal, m.DiagnosticsTotal, m.PassDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// Record counts one transformed record.
func (m *Metrics) Record(kind entity.Kind, outcome string) {
	m.RecordsTotal.WithLabelValues(kind.String(), outcome).Inc()
}

// Sink returns a diagnostic.Sink counting every diagnostic before passing it
// on to next. A nil next only counts.
func (m *Metrics) Sink(next diagnostic.Sink) diagnostic.Sink {
	return diagnostic.SinkFunc(func(d diagnostic.Diagnostic) {
		m.DiagnosticsTotal.WithLabelValues(d.Kind.String(), d.Severity.String(), string(d.Code)).Inc()

		if next != nil {
			next.Report(d)
		}
	})
}
