package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты операций для лейбла result.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hustlaa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hustlaa_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WalletOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hustlaa_wallet_operations_total",
			Help: "Total number of wallet balance mutations",
		},
		[]string{"type", "result"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hustlaa_booking_transitions_total",
			Help: "Total number of applied booking status transitions",
		},
		[]string{"to", "actor"},
	)

	PaymentConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hustlaa_payment_confirmations_total",
			Help: "Total number of gateway payment confirmations",
		},
		[]string{"source", "changed"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hustlaa_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hustlaa_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	SideEffectFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hustlaa_side_effect_failures_total",
			Help: "Total number of failed best-effort side effects",
		},
		[]string{"kind"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWalletOperation(txType string, err error) {
	WalletOperationsTotal.WithLabelValues(txType, result(err)).Inc()
}

func RecordBookingTransition(to, actor string) {
	BookingTransitionsTotal.WithLabelValues(to, actor).Inc()
}

func RecordPaymentConfirmation(source string, changed bool) {
	c := "false"
	if changed {
		c = "true"
	}
	PaymentConfirmationsTotal.WithLabelValues(source, c).Inc()
}

func RecordEmail(status string) {
	EmailsSentTotal.WithLabelValues(status).Inc()
}

func RecordSideEffectFailure(kind string) {
	SideEffectFailuresTotal.WithLabelValues(kind).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
