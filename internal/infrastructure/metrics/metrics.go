package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CRM-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"operation", "status"},
	)

	// Lead conversions
	LeadConversionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "lead_conversions_total",
			Help:      "Total leads converted to customers",
		},
	)

	// Task reminder sweeps
	TaskRemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "task_reminders_total",
			Help:      "Total task reminder deliveries by outcome",
		},
		[]string{"status"},
	)

	// Outbound notifications
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "notifications_total",
			Help:      "Total outbound webhook notifications by kind and outcome",
		},
		[]string{"kind", "status"},
	)
)

// RecordRequest records HTTP request metrics
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordAuthRequest records an authentication attempt outcome
func RecordAuthRequest(operation, status string) {
	AuthRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordLeadConversion increments the lead conversion counter
func RecordLeadConversion() {
	LeadConversionsTotal.Inc()
}

// RecordTaskReminder records a reminder delivery outcome
func RecordTaskReminder(status string) {
	TaskRemindersTotal.WithLabelValues(status).Inc()
}

// RecordNotification records an outbound notification outcome
func RecordNotification(kind, status string) {
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}
