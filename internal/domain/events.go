package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicBookingStatusChanged = "bookings.status_changed"
	TopicWalletTransactions   = "wallet.transactions"
)

type BookingStatusChangedEvent struct {
	BookingID  int64         `json:"booking_id"`
	From       BookingStatus `json:"from"`
	To         BookingStatus `json:"to"`
	Actor      ActorType     `json:"actor"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type WalletTransactionEvent struct {
	TransactionID int64             `json:"transaction_id"`
	WalletID      int64             `json:"wallet_id"`
	UserID        int64             `json:"user_id"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	BalanceAfter  decimal.Decimal   `json:"balance_after"`
	OccurredAt    time.Time         `json:"occurred_at"`
}
