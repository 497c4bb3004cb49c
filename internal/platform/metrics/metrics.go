// Package metrics holds the Prometheus collectors exposed on /metrics
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "residences"

// Metrics is the set of collectors the process records into
type Metrics struct {
	reg prometheus.Gatherer

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PanicsTotal     prometheus.Counter

	// Voice resolution
	VoiceOutcomes        *prometheus.CounterVec
	VoiceDuration        *prometheus.HistogramVec
	DirectorySize        *prometheus.HistogramVec
	AuditFailures        prometheus.Counter
	RecordsWritten       *prometheus.CounterVec
	DirectoryFetchErrors *prometheus.CounterVec
}

// New registers a fresh collector set on reg
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method and status class",
		}, []string{"method", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		PanicsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Handler panics recovered",
		}),
		VoiceOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "outcomes_total",
			Help:      "Voice resolutions by transcript kind and outcome",
		}, []string{"kind", "outcome"}),
		VoiceDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "resolution_duration_seconds",
			Help:      "Time spent resolving one transcript including directory reads",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
		DirectorySize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "directory_entries",
			Help:      "Entries scanned per directory read",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"directory"}),
		AuditFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "audit_failures_total",
			Help:      "Resolution audit events that could not be written",
		}),
		RecordsWritten: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "records_written_total",
			Help:      "Task applications and measurements committed from voice",
		}, []string{"record"}),
		DirectoryFetchErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "voice",
			Name:      "directory_errors_total",
			Help:      "Directory reads that failed",
		}, []string{"directory"}),
	}
}

var defaultMetrics = func() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}()

// Default returns the process wide collector set
func Default() *Metrics { return defaultMetrics }

// Handler serves the collectors in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// StatusClass buckets an HTTP status as "2xx", "4xx" and so on
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
