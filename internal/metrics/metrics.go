package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the inspector's Prometheus metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Commands         *prometheus.CounterVec
	NavigationErrors *prometheus.CounterVec
	BlobBytes        *prometheus.CounterVec
	BlobReadDuration prometheus.Histogram
}

// New creates a metrics collector on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brdbfs_commands_total",
				Help: "Total number of commands run, by outcome",
			},
			[]string{"command", "outcome"},
		),
		NavigationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brdbfs_navigation_errors_total",
				Help: "Total number of path resolution failures",
			},
			[]string{"reason"},
		),
		BlobBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brdbfs_blob_bytes_total",
				Help: "Bytes read from blobs, before and after decompression",
			},
			[]string{"stage"},
		),
		BlobReadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brdbfs_blob_read_duration_seconds",
				Help:    "Time spent fetching and decoding one blob",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
	}
}

// RecordCommand counts one command run
func (m *Metrics) RecordCommand(command, outcome string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command, outcome).Inc()
}

// RecordNavigationError counts one failed resolution
func (m *Metrics) RecordNavigationError(reason string) {
	if m == nil {
		return
	}
	m.NavigationErrors.WithLabelValues(reason).Inc()
}

// RecordBlobRead records the sizes and duration of one blob read
func (m *Metrics) RecordBlobRead(compressed, uncompressed int, duration time.Duration) {
	if m == nil {
		return
	}
	m.BlobBytes.WithLabelValues("compressed").Add(float64(compressed))
	m.BlobBytes.WithLabelValues("uncompressed").Add(float64(uncompressed))
	m.BlobReadDuration.Observe(duration.Seconds())
}

// WriteTextfile writes all metrics to path in the text exposition format, for
// pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
