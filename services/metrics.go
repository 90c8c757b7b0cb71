package services

import "github.com/prometheus/client_golang/prometheus"

var (
	logsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dirtyfeed_logs_created_total",
			Help: "Total number of martini logs added",
		},
	)
	logsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dirtyfeed_logs_deleted_total",
			Help: "Total number of martini logs deleted",
		},
	)
	badgesEarnedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirtyfeed_badges_earned_total",
			Help: "Badges newly earned by adding a log",
		},
		[]string{"badge"},
	)
	goldenHourLogsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dirtyfeed_golden_hour_logs_total",
			Help: "Logs created inside the golden hour window",
		},
	)
	goldenHourActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dirtyfeed_golden_hour_active",
			Help: "Whether the golden hour window is currently open",
		},
	)
	stateWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dirtyfeed_state_write_failures_total",
			Help: "Fire-and-forget state writes that failed",
		},
		[]string{"key"},
	)
)

// InitMetrics registers the domain metrics. Call this from main.go
func InitMetrics() {
	prometheus.MustRegister(logsCreatedTotal)
	prometheus.MustRegister(logsDeletedTotal)
	prometheus.MustRegister(badgesEarnedTotal)
	prometheus.MustRegister(goldenHourLogsTotal)
	prometheus.MustRegister(goldenHourActive)
	prometheus.MustRegister(stateWriteFailures)
}
