package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Intake-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notaria",
			Subsystem: "intake_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notaria",
			Subsystem: "intake_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Dialogue turn counter, labeled by the step the turn landed on
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notaria",
			Subsystem: "intake_api",
			Name:      "dialogue_turns_total",
			Help:      "Total dialogue turns processed",
		},
		[]string{"step", "restarted"},
	)

	// Recorded intake counter
	IntakesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notaria",
			Subsystem: "intake_api",
			Name:      "intakes_total",
			Help:      "Total intake submissions recorded",
		},
		[]string{"service_type", "status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordTurn records one processed dialogue turn
func RecordTurn(step string, restarted bool) {
	label := "false"
	if restarted {
		label = "true"
	}
	TurnsTotal.WithLabelValues(step, label).Inc()
}

// RecordIntake records one intake submission attempt
func RecordIntake(serviceType, status string) {
	IntakesTotal.WithLabelValues(serviceType, status).Inc()
}
