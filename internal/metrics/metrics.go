package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bugtracker",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "code"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bugtracker",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	bugOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bugtracker",
		Name:      "bug_operations_total",
		Help:      "Bug mutations by operation and outcome",
	}, []string{"op", "outcome"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, bugOps)
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route, code string, seconds float64) {
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func BugOperation(op, outcome string) {
	bugOps.WithLabelValues(op, outcome).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
