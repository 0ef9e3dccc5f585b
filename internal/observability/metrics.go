// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReviewDecisions counts completed reviews by request kind and resulting status.
	ReviewDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "childrenlk_review_decisions_total",
		Help: "Total number of request reviews by kind and status",
	}, []string{"kind", "status"})

	// Submissions counts organizer submissions by request kind.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "childrenlk_submissions_total",
		Help: "Total number of organizer submissions by kind",
	}, []string{"kind"})

	// EmailFailures counts transactional emails that could not be sent, by template.
	EmailFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "childrenlk_email_failures_total",
		Help: "Total number of transactional email send failures",
	}, []string{"template"})

	// UploadLatency records media host upload latency by provider and outcome.
	UploadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "childrenlk_upload_latency_seconds",
		Help:    "Media host upload latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "outcome"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "childrenlk_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DownloadsRecorded counts public document downloads.
	DownloadsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "childrenlk_downloads_recorded_total",
		Help: "Total number of recorded document downloads",
	})
)

// ObserveUpload records an upload attempt that started at start.
func ObserveUpload(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UploadLatency.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
}
