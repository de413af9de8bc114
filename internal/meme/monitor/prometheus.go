package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// GatewayRequests Gateway 调用结果, status 为 0 表示没有收到响应
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radix_gateway_requests_total",
			Help: "Total number of Radix gateway request attempts by path and status.",
		},
		[]string{"path", "status"},
	)
	GatewayRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radix_gateway_retries_total",
			Help: "Total number of retried Radix gateway requests.",
		},
		[]string{"path"},
	)
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "radix_gateway_request_duration_seconds",
			Help:    "Time taken by a single Radix gateway request attempt.",
			Buckets: []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"path"},
	)

	// AggregateFetches 聚合操作指标
	AggregateFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radix_meme_aggregate_fetches_total",
			Help: "Total number of aggregate fetches by operation and outcome (ok, partial, failed).",
		},
		[]string{"operation", "outcome"},
	)
	AggregateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "radix_meme_aggregate_duration_seconds",
			Help:    "Time taken to build an aggregate record.",
			Buckets: []float64{0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		// gateway 指标
		GatewayRequests,
		GatewayRetries,
		GatewayRequestDuration,

		// 聚合指标
		AggregateFetches,
		AggregateDuration,
	)
}
