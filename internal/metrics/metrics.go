package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_total",
			Help: "Total executed trades",
		},
		[]string{"side"}, // buy|sell
	)
	TradesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trades_failed_total",
			Help: "Total rejected or failed trades",
		},
		[]string{"reason"},
	)

	QuoteLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_lookups_total",
			Help: "Upstream quote lookups by result",
		},
		[]string{"result"}, // ok|not_found|error
	)

	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(TradesTotal, TradesFailed, QuoteLookups, HTTPLatency, WorkerQueueDepth)
	})
}
