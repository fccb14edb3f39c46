package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_job_runs_total",
			Help: "Total number of sync job runs by outcome",
		},
		[]string{"job", "status"},
	)

	jobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_job_duration_seconds",
			Help:    "Sync job run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	jobRecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_job_records_processed_total",
			Help: "Records processed by sync jobs",
		},
		[]string{"job"},
	)

	staleAvailableArtists = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_stale_available_artists",
			Help: "Artists flagged available whose records have not been refreshed within the staleness window",
		},
	)
)

// observeRun records metrics for a completed job run.
func observeRun(run JobRun) {
	status := "success"
	if run.Err != nil {
		status = "failure"
	}
	jobRunsTotal.WithLabelValues(run.Job, status).Inc()
	jobDuration.WithLabelValues(run.Job).Observe(run.Duration.Seconds())
	jobRecordsProcessed.WithLabelValues(run.Job).Add(float64(run.Processed))
}
