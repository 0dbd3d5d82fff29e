package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TripMind Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripmind",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripmind",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Dialogue turns by outcome (clarification, confirmation, itinerary,
	// list, unrelated, superseded, error)
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripmind",
			Subsystem: "planner",
			Name:      "turns_total",
			Help:      "Total dialogue turns by outcome",
		},
		[]string{"outcome"},
	)

	// Itinerary generation duration
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripmind",
			Subsystem: "planner",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end itinerary generation duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"destination"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripmind",
			Subsystem: "planner",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tripmind",
			Subsystem: "planner",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Saved itineraries
	ItinerariesSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripmind",
			Subsystem: "planner",
			Name:      "itineraries_saved_total",
			Help:      "Itinerary save attempts by status",
		},
		[]string{"status"},
	)

	// Live dialogue sessions gauge
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tripmind",
			Subsystem: "planner",
			Name:      "active_sessions",
			Help:      "Dialogue sessions currently held in memory",
		},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordTurn records a dialogue turn outcome
func RecordTurn(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	TurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordGeneration records the duration of one itinerary generation
func RecordGeneration(destination string, durationSec float64) {
	GenerationDuration.WithLabelValues(destination).Observe(durationSec)
}

// RecordProviderError records a provider error
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// RecordItinerarySave records an itinerary save attempt
func RecordItinerarySave(status string) {
	if status == "" {
		status = "unknown"
	}
	ItinerariesSavedTotal.WithLabelValues(status).Inc()
}

// SetActiveSessions sets the live session gauge after a sweep
func SetActiveSessions(count int) {
	ActiveSessions.Set(float64(count))
}
