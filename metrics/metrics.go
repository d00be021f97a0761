package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts requests that went through the static
	// middleware, partitioned by outcome: the served content encoding
	// ("br", "gzip", "identity") or "fallthrough" for requests delegated
	// downstream.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assetgate_requests_total",
		Help: "The total number of requests handled, by serving outcome",
	}, []string{"outcome"})

	// ServingTime measures how long it takes to resolve and serve a file
	ServingTime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assetgate_serving_time_seconds",
		Help:    "The time (in seconds) taken to serve a matched file",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1, 5},
	})

	// ServingFileSize tracks the size of served files
	ServingFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assetgate_serving_file_size_bytes",
		Help:    "The size (in bytes) of files served",
		Buckets: prometheus.ExponentialBuckets(256, 4, 10),
	})

	// RateLimitedRequests counts requests rejected by the source-IP rate limiter
	RateLimitedRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assetgate_rate_limited_requests_total",
		Help: "The total number of requests rejected by the source IP rate limiter",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ServingTime)
	prometheus.MustRegister(ServingFileSize)
	prometheus.MustRegister(RateLimitedRequests)
}
