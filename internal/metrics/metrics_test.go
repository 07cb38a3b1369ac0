package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/api/wallet/topup", "201", 0.2)
	RecordHTTPRequest("POST", "/api/wallet/topup", "201", 0.1)
	RecordHTTPRequest("POST", "/api/wallet/topup", "400", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/wallet/topup", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/wallet/topup", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordWalletOperation(t *testing.T) {
	WalletOperationsTotal.Reset()

	RecordWalletOperation("deposit", nil)
	RecordWalletOperation("payment", errors.New("insufficient balance"))
	RecordWalletOperation("payment", nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(WalletOperationsTotal.WithLabelValues("deposit", ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(WalletOperationsTotal.WithLabelValues("payment", ResultFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(WalletOperationsTotal.WithLabelValues("payment", ResultSuccess)))
}

func TestRecordPaymentConfirmation(t *testing.T) {
	PaymentConfirmationsTotal.Reset()

	RecordPaymentConfirmation("webhook", true)
	RecordPaymentConfirmation("webhook", false)
	RecordPaymentConfirmation("webhook", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(PaymentConfirmationsTotal.WithLabelValues("webhook", "true")))
	assert.Equal(t, float64(2), testutil.ToFloat64(PaymentConfirmationsTotal.WithLabelValues("webhook", "false")))
}

func TestRecordBookingTransitionAndEmail(t *testing.T) {
	BookingTransitionsTotal.Reset()
	EmailsSentTotal.Reset()

	RecordBookingTransition("confirmed", "payment")
	RecordEmail("sent")
	RecordEmail("failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(BookingTransitionsTotal.WithLabelValues("confirmed", "payment")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("failed")))
}
