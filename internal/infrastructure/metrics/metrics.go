package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LLMRequestsTotal counts model calls.
	// Labels: provider, task (feedback_summary/minutes_decision/...), status (success/error)
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitator_llm_requests_total",
			Help: "Total number of LLM requests by provider, task and status",
		},
		[]string{"provider", "task", "status"},
	)

	// LLMRequestDuration observes model latency in seconds
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facilitator_llm_request_duration_seconds",
			Help:    "LLM request duration in seconds by provider and task",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider", "task"},
	)

	// AnalysisJobsTotal counts post-message analysis jobs by outcome
	AnalysisJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitator_analysis_jobs_total",
			Help: "Total number of analysis jobs by status (success/error/dropped)",
		},
		[]string{"status"},
	)

	// AnalysisQueueDepth is the number of queued analysis jobs
	AnalysisQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "facilitator_analysis_queue_depth",
			Help: "Number of analysis jobs waiting for a worker",
		},
	)

	// InterventionsTotal counts intervention lifecycle events.
	// Labels: event (requested/skipped/allowed)
	InterventionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitator_interventions_total",
			Help: "Total number of intervention events",
		},
		[]string{"event"},
	)

	// FeedbacksTotal counts facilitator feedback generations
	FeedbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitator_feedbacks_total",
			Help: "Total number of feedback generations by status",
		},
		[]string{"status"},
	)

	// HTTPRequestsTotal counts API requests by route template
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitator_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	// HTTPRequestDuration observes API latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "facilitator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// TranscriptionsTotal counts audio transcriptions
	TranscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facilitator_transcriptions_total",
			Help: "Total number of audio transcriptions by status",
		},
		[]string{"status"},
	)
)

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordLLMRequest records one model call
func RecordLLMRequest(provider, task string, d time.Duration, success bool) {
	LLMRequestsTotal.WithLabelValues(provider, task, status(success)).Inc()
	LLMRequestDuration.WithLabelValues(provider, task).Observe(d.Seconds())
}

// RecordAnalysisJob records a finished job. Use "dropped" when the queue was full.
func RecordAnalysisJob(outcome string) {
	AnalysisJobsTotal.WithLabelValues(outcome).Inc()
}

// SetAnalysisQueueDepth sets the queue gauge
func SetAnalysisQueueDepth(n int) {
	AnalysisQueueDepth.Set(float64(n))
}

// RecordIntervention records an intervention event
func RecordIntervention(event string) {
	InterventionsTotal.WithLabelValues(event).Inc()
}

// RecordFeedback records a feedback generation
func RecordFeedback(success bool) {
	FeedbacksTotal.WithLabelValues(status(success)).Inc()
}

// RecordTranscription records an audio transcription
func RecordTranscription(success bool) {
	TranscriptionsTotal.WithLabelValues(status(success)).Inc()
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, route string, code int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
