package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	importCommits     *prometheus.CounterVec
	importDuration    prometheus.Histogram
	importedRows      prometheus.Gauge
	parseRequests     *prometheus.CounterVec
	parseDuration     prometheus.Histogram
	preloadRuns       *prometheus.CounterVec
	preloadDuration   prometheus.Histogram
	decryptFailures   prometheus.Counter
	duplicatesFlagged prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		importCommits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_commits_total",
				Help: "Total number of import commit attempts",
			},
			[]string{"status"},
		),
		importDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "import_commit_duration_milliseconds",
				Help:    "Import commit duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		importedRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "import_rows_last_commit",
				Help: "Number of rows persisted by the most recent commit",
			},
		),
		parseRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csv_parse_requests_total",
				Help: "Total number of CSV parse requests by format",
			},
			[]string{"format", "status"},
		),
		parseDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "csv_parse_duration_milliseconds",
				Help:    "CSV parse duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		preloadRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "preload_runs_total",
				Help: "Total number of transaction preload runs",
			},
			[]string{"status"},
		),
		preloadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "preload_duration_milliseconds",
				Help:    "Transaction preload duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		decryptFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "preload_decrypt_failures_total",
				Help: "Total number of records dropped during preload because decryption failed",
			},
		),
		duplicatesFlagged: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "import_duplicates_flagged_total",
				Help: "Total number of parsed rows flagged as duplicates",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "import.commit":
		if status != "" {
			m.importCommits.WithLabelValues(status).Inc()
		}
	case "import.parse":
		if status != "" {
			m.parseRequests.WithLabelValues(tags["format"], status).Inc()
		}
	case "import.duplicate.flagged":
		m.duplicatesFlagged.Inc()
	case "preload.run":
		if status != "" {
			m.preloadRuns.WithLabelValues(status).Inc()
		}
	case "preload.decrypt":
		if status == "failed" {
			m.decryptFailures.Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "import.commit":
		m.importDuration.Observe(float64(duration.Milliseconds()))
	case "import.parse":
		m.parseDuration.Observe(float64(duration.Milliseconds()))
	case "preload.run":
		m.preloadDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "import.rows_imported" {
		m.importedRows.Set(value)
	}
}
