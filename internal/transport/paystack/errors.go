package paystack

import "errors"

var (
	ErrNoPayments = errors.New("no payments")
)
