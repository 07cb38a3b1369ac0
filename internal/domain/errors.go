package domain

import (
	"errors"
	"fmt"
)

// Ошибки уровня репозитория.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")
)

// Бизнес-ошибки кошелька и бронирований.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrServiceNotFound     = errors.New("service not found")
	ErrArtisanUnavailable  = errors.New("artisan is not available")
	ErrReviewAlreadyExists = errors.New("review already exists for this booking")
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrInvalidInput         = errors.New("invalid input")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrTransactionNotFound  = errors.New("wallet transaction not found")
	ErrPaymentNotSuccessful = errors.New("payment was not successful")
	ErrBookingAlreadyPaid   = errors.New("booking is already paid")
	ErrInvalidSignature     = errors.New("invalid signature")
)

// InvalidTransitionError недопустимый переход бронирования. Сравнивается с ErrInvalidTransition через errors.Is.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func NewInvalidTransitionError(from, to BookingStatus) error {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: booking cannot move from `%s` to `%s`", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
