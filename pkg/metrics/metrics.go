package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventsLoggedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promoted_events_logged_total",
			Help: "Total number of events handed to the transport, by event type and status (count)",
		},
		[]string{"event_type", "status"},
	)

	UserDedupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promoted_user_dedup_total",
			Help: "Outcomes of user event deduplication checks (count)",
		},
		[]string{"status"},
	)

	EventLogDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promoted_event_log_duration_ms",
			Help:    "Duration of a single log operation including transport delivery in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"event_type"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)

	SinkEventsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sink_events_received_total",
			Help: "Total number of event envelopes received by the collector sink (count)",
		},
		[]string{"kind"},
	)

	SinkRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sink_rejected_total",
			Help: "Total number of envelopes the collector sink rejected (count)",
		},
		[]string{"reason"},
	)
)

func RegisterLoggerMetrics() {
	prometheus.MustRegister(EventsLoggedTotal)
	prometheus.MustRegister(UserDedupTotal)
	prometheus.MustRegister(EventLogDuration)
}

func RegisterCircuitBreakerMetrics() {
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(CircuitBreakerRequests)
	prometheus.MustRegister(CircuitBreakerFailures)
}

func RegisterSinkMetrics() {
	prometheus.MustRegister(RateLimitRequestsTotal)
	prometheus.MustRegister(SinkEventsReceivedTotal)
	prometheus.MustRegister(SinkRejectedTotal)
}

func IncEventLogged(eventType, status string) {
	EventsLoggedTotal.WithLabelValues(eventType, status).Inc()
}

func IncUserDedup(status string) {
	UserDedupTotal.WithLabelValues(status).Inc()
}

func ObserveEventLogDuration(eventType string, duration time.Duration) {
	EventLogDuration.WithLabelValues(eventType).Observe(float64(duration.Milliseconds()))
}
