package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	ruleRejectsTotal   *prometheus.CounterVec
	lateSubmitsCounter prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academics_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "academics_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academics_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		ruleRejectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academics_rule_rejects_total",
			Help: "Integrity rule violations that aborted a save, by rule code.",
		}, []string{"rule"})

		lateSubmitsCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academics_late_submissions_total",
			Help: "Submissions classified late at creation time.",
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, ruleRejectsTotal, lateSubmitsCounter)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// RuleRejects exposes the counter for integrity rule rejections.
func RuleRejects() *prometheus.CounterVec {
	RegisterMetrics()
	return ruleRejectsTotal
}

// LateSubmissions exposes the counter for late-classified submissions.
func LateSubmissions() prometheus.Counter {
	RegisterMetrics()
	return lateSubmitsCounter
}
