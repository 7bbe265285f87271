// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sake_catalog_loads_total",
			Help: "Catalog load attempts by outcome",
		},
		[]string{"outcome"},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sake_catalog_items",
			Help: "Number of items in the current catalog snapshot",
		},
	)

	CatalogLoading = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sake_catalog_loads_in_flight",
			Help: "Catalog fetches currently in flight",
		},
	)

	MatchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sake_match_results",
			Help:    "Number of results returned per match",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sake_questionnaire_sessions_active",
			Help: "Questionnaire sessions held in memory",
		},
	)
)

// RecordJob observes one finished job. An empty errorCode counts as completed.
func RecordJob(taskType string, duration time.Duration, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(duration.Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}
