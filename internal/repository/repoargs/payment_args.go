package repoargs

import "github.com/shopspring/decimal"

type CreatePayment struct {
	BookingID     int64
	Amount        decimal.Decimal
	PaymentMethod string
	Reference     string
}
