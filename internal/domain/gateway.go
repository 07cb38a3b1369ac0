package domain

import "github.com/shopspring/decimal"

// Статусы транзакции на стороне платежного шлюза.
const (
	GatewayStatusSuccess   = "success"
	GatewayStatusFailed    = "failed"
	GatewayStatusAbandoned = "abandoned"
	GatewayStatusReversed  = "reversed"
)

const (
	PaymentMethodPaystack = "paystack"

	// GatewayEventChargeSuccess единственное событие вебхука, которое подтверждает оплату.
	GatewayEventChargeSuccess = "charge.success"
)

// GatewayCheckout результат инициализации оплаты картой.
type GatewayCheckout struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// GatewayVerification состояние транзакции, полученное от шлюза.
type GatewayVerification struct {
	Reference string
	Status    string
	Amount    decimal.Decimal
}

// IsFinalFailure true для транзакций, которые уже не станут успешными.
func (v GatewayVerification) IsFinalFailure() bool {
	switch v.Status {
	case GatewayStatusFailed, GatewayStatusAbandoned, GatewayStatusReversed:
		return true
	default:
		return false
	}
}

// GatewayEvent разобранное и проверенное событие вебхука.
type GatewayEvent struct {
	Event       string
	Transaction GatewayVerification
}
