package service

import (
	"context"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type WalletRepository interface {
	Ensure(ctx context.Context, userID int64) (*domain.Wallet, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
	FindByUserIDForUpdate(ctx context.Context, userID int64) (*domain.Wallet, error)
	FindByIDForUpdate(ctx context.Context, walletID int64) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, args repoargs.UpdateWalletBalance) (*domain.Wallet, error)
}

type WalletTransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateWalletTransaction) (*domain.WalletTransaction, error)
	FindByID(ctx context.Context, id int64) (*domain.WalletTransaction, error)
	HasBookingPayment(ctx context.Context, bookingID int64) (bool, error)
	UpdatePendingStatus(
		ctx context.Context,
		id int64,
		status domain.TransactionStatus,
	) (*domain.WalletTransaction, error)
	List(
		ctx context.Context,
		walletID int64,
		filter repoargs.TransactionFilter,
	) ([]domain.WalletTransaction, error)
}

type BookingRepository interface {
	Create(ctx context.Context, args repoargs.CreateBooking) (*domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	TransitionStatus(ctx context.Context, args repoargs.TransitionBooking) (*domain.Booking, error)
	SetETA(ctx context.Context, id int64, eta time.Time) (*domain.Booking, error)
	FindContacts(ctx context.Context, id int64) (*domain.BookingContacts, error)
}

type TimelineRepository interface {
	Create(ctx context.Context, args repoargs.CreateTimelineEvent) (*domain.TimelineEvent, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.TimelineEvent, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
}

type ArtisanRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.ArtisanProfile, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.ArtisanProfile, error)
	RecalculateRating(ctx context.Context, id int64) (*domain.ArtisanProfile, error)
}

type CatalogRepository interface {
	FindService(ctx context.Context, serviceID, artisanID int64) (*domain.ServiceOffering, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error)
	FindByReference(ctx context.Context, reference string) (*domain.Payment, error)
	FindByReferenceForUpdate(ctx context.Context, reference string) (*domain.Payment, error)
	HasCompletedForBooking(ctx context.Context, bookingID int64) (bool, error)
	MarkCompleted(ctx context.Context, reference string) (*domain.Payment, bool, error)
	MarkFailed(ctx context.Context, reference string) (bool, error)
	GetPendingForReconciliation(ctx context.Context, olderThan time.Duration, limit uint) ([]domain.Payment, error)
}

// Notifier сохраняет уведомление пользователю.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}

// Mailer ставит в очередь письма обеим сторонам бронирования.
type Mailer interface {
	SendBookingEmail(ctx context.Context, bookingID int64, title, intro string) error
}

// EventPublisher публикует доменные события во внешнюю шину.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

type PaymentGateway interface {
	Initialize(
		ctx context.Context,
		email string,
		amount decimal.Decimal,
		reference string,
		bookingID int64,
	) (*domain.GatewayCheckout, error)
	Verify(ctx context.Context, reference string) (*domain.GatewayVerification, error)
	ParseWebhook(signature string, body []byte) (*domain.GatewayEvent, error)
}
