package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	providerReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gist",
			Name:      "provider_requests_total",
			Help:      "Total provider requests by provider, operation and result",
		},
		[]string{"provider", "operation", "result"},
	)

	providerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gist",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of provider requests by provider and operation",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	extractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gist",
			Name:      "documents_extracted_total",
			Help:      "Documents extracted by file type and result",
		},
		[]string{"file_type", "result"},
	)

	uploadsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gist",
			Name:      "uploads_rejected_total",
			Help:      "Uploads rejected before extraction, by reason",
		},
		[]string{"reason"},
	)
)

// Init registers collectors. Call once at startup; observation helpers work
// either way, unregistered collectors just never reach the exposition page.
func Init() {
	prometheus.MustRegister(providerReqs, providerLatency, extractions, uploadsRejected)
}

// Handler returns the exposition handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveProvider records one remote provider call.
func ObserveProvider(provider, operation string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	providerReqs.WithLabelValues(provider, operation, result).Inc()
	providerLatency.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// ObserveExtraction records one document extraction attempt.
func ObserveExtraction(fileType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	extractions.WithLabelValues(fileType, result).Inc()
}

// UploadRejected counts an upload refused before extraction.
func UploadRejected(reason string) {
	uploadsRejected.WithLabelValues(reason).Inc()
}
