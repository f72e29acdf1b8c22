// Package metrics exposes Prometheus collectors for the fetch and download paths.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/denisAlshanov/vidgrab/internal/models"
)

const namespace = "vidgrab"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	MetadataFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_fetches_total",
		Help:      "Metadata fetches by result.",
	}, []string{"result"})

	Downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Downloads by quality and result.",
	}, []string{"quality", "result"})

	DownloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "download_duration_seconds",
		Help:      "Wall-clock time spent inside the extraction engine per download.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"quality"})

	DownloadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloaded_bytes_total",
		Help:      "Size of files produced by successful downloads.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "UI sessions currently held in memory.",
	})
)

// QualityLabel bounds label cardinality: free-form qualities collapse to "other".
func QualityLabel(q models.Quality) string {
	for _, known := range models.Qualities() {
		if q == known {
			return string(q)
		}
	}
	return "other"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
