package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/internal/service"
)

type WalletServicer interface {
	GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error)
	ListTransactions(
		ctx context.Context,
		userID int64,
		filter repoargs.TransactionFilter,
	) ([]domain.WalletTransaction, error)
	TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (*service.WalletOperationResult, error)
	Withdraw(
		ctx context.Context,
		userID int64,
		amount decimal.Decimal,
		bankAccount string,
	) (*service.WalletOperationResult, error)
	PayBooking(ctx context.Context, userID, bookingID int64, amount decimal.Decimal) (*service.PayBookingResult, error)
	SettleWithdrawal(
		ctx context.Context,
		transactionID int64,
		status domain.TransactionStatus,
	) (*service.SettleWithdrawalResult, error)
}

type BookingServicer interface {
	Create(ctx context.Context, customerID int64, args service.CreateBookingArgs) (*domain.Booking, error)
	Get(ctx context.Context, actorUserID, bookingID int64) (*domain.Booking, error)
	Timeline(ctx context.Context, actorUserID, bookingID int64) ([]domain.TimelineEvent, error)
	UpdateStatus(
		ctx context.Context,
		actorUserID, bookingID int64,
		newStatus domain.BookingStatus,
	) (*domain.Booking, error)
	MarkArrived(ctx context.Context, actorUserID, bookingID int64) (*domain.Booking, error)
	Complete(ctx context.Context, actorUserID, bookingID int64, completionNotes string) (*domain.Booking, error)
	Cancel(ctx context.Context, customerID, bookingID int64) (*domain.Booking, error)
	SetETA(ctx context.Context, actorUserID, bookingID int64, eta time.Time) (*domain.Booking, error)
}

type ReviewServicer interface {
	Create(
		ctx context.Context,
		customerID, bookingID int64,
		rating int,
		comment string,
	) (*service.CreateReviewResult, error)
}

type PaymentServicer interface {
	Initialize(ctx context.Context, customerID, bookingID int64) (*service.InitializePaymentResult, error)
	Verify(ctx context.Context, customerID int64, reference string) (*service.ConfirmFromPaymentResult, error)
	HandleWebhook(ctx context.Context, signature string, body []byte) error
}
