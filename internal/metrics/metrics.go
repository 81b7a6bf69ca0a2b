// Package metrics defines the Prometheus metrics exported by the threads server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// commentsCreated counts new comments.
	// Labels: kind (comment, reply)
	commentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "threads",
		Name:      "comments_created_total",
		Help:      "Total comments created",
	}, []string{"kind"})

	upvotes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "threads",
		Name:      "upvotes_total",
		Help:      "Total upvotes recorded",
	})

	// httpRequests counts served requests.
	// Labels: method, code
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "threads",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method and status code",
	}, []string{"method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "threads",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// CommentCreated records a new comment of the given kind.
func CommentCreated(kind string) {
	commentsCreated.WithLabelValues(kind).Inc()
}

// Upvoted records a single upvote.
func Upvoted() {
	upvotes.Inc()
}

// ObserveRequest records a finished HTTP request.
func ObserveRequest(method string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
