package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adyen_gateway_requests_total",
		Help: "Processor calls by operation and outcome code.",
	}, []string{"operation", "code"})

	gatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "adyen_gateway_request_duration_seconds",
		Help:    "Processor call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	paymentRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_records_total",
		Help: "Persisted payment records by operation and result.",
	}, []string{"operation", "successful"})
)

// Outcome codes used for calls that produced no processor reply.
const (
	CodeValidation  = "validation_error"
	CodeUnsupported = "unsupported"
	CodeTransport   = "transport_error"
	CodeMalformed   = "malformed_response"
)

// ObserveGatewayCall records one processor call.
func ObserveGatewayCall(operation, code string, duration time.Duration) {
	gatewayRequests.WithLabelValues(operation, code).Inc()
	gatewayDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObservePaymentRecord counts a persisted record.
func ObservePaymentRecord(operation string, successful bool) {
	label := "false"
	if successful {
		label = "true"
	}
	paymentRecords.WithLabelValues(operation, label).Inc()
}

// MetricsHandler serves the default prometheus registry.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
