package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/metrics"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const paymentReferencePrefix = "HSTL-"

type PaymentService struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	transRepo   WalletTransactionRepository
	bookings    *BookingService
	gateway     PaymentGateway
	logger      *logrus.Entry
}

func NewPaymentService(
	u uow.UOW,
	bookings *BookingService,
	gateway PaymentGateway,
	l *logrus.Logger,
) (*PaymentService, error) {
	paymentRepo, err := uow.GetRepositoryAs[PaymentRepository](u, repoargs.PaymentRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	bookingRepo, err := uow.GetRepositoryAs[BookingRepository](u, repoargs.BookingRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transRepo, err := uow.GetRepositoryAs[WalletTransactionRepository](u, repoargs.WalletTransactionRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		transRepo:   transRepo,
		bookings:    bookings,
		gateway:     gateway,
		logger:      l.WithField("component", "payment_service"),
	}, nil
}

type InitializePaymentResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
	Amount           decimal.Decimal
}

// Initialize создает оплату бронирования картой через платежный шлюз. Оплатить можно ожидающее
// или уже подтвержденное ремесленником бронирование, если оно еще не оплачено.
func (p *PaymentService) Initialize(
	ctx context.Context,
	customerID, bookingID int64,
) (*InitializePaymentResult, error) {
	booking, err := p.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBookingNotFound)
	}
	if booking.CustomerID != customerID {
		return nil, domain.ErrNotAuthorized
	}
	if !domain.AcceptsPayment(booking.Status) {
		return nil, domain.NewInvalidTransitionError(booking.Status, domain.BookingStatusConfirmed)
	}

	paid, err := bookingPaid(ctx, p.transRepo, p.paymentRepo, bookingID)
	if err != nil {
		return nil, fmt.Errorf("initialize payment for booking %d: %w", bookingID, err)
	}
	if paid {
		return nil, domain.ErrBookingAlreadyPaid
	}

	contacts, err := p.bookingRepo.FindContacts(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("initialize payment for booking %d: %w", bookingID, err)
	}

	checkout, err := p.gateway.Initialize(
		ctx,
		contacts.CustomerEmail,
		booking.TotalAmount,
		paymentReferencePrefix+uuid.NewString(),
		booking.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize payment for booking %d: %w", bookingID, err)
	}

	if _, err = p.paymentRepo.Create(ctx, repoargs.CreatePayment{
		BookingID:     booking.ID,
		Amount:        booking.TotalAmount,
		PaymentMethod: domain.PaymentMethodPaystack,
		Reference:     checkout.Reference,
	}); err != nil {
		return nil, fmt.Errorf("store payment `%s`: %w", checkout.Reference, err)
	}

	return &InitializePaymentResult{
		AuthorizationURL: checkout.AuthorizationURL,
		AccessCode:       checkout.AccessCode,
		Reference:        checkout.Reference,
		Amount:           booking.TotalAmount,
	}, nil
}

// Verify проверяет оплату у шлюза по запросу клиента и подтверждает бронирование.
func (p *PaymentService) Verify(
	ctx context.Context,
	customerID int64,
	reference string,
) (*ConfirmFromPaymentResult, error) {
	payment, err := p.paymentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrPaymentNotFound)
	}
	booking, err := p.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrBookingNotFound)
	}
	if booking.CustomerID != customerID {
		return nil, domain.ErrNotAuthorized
	}

	res, err := p.reconcile(ctx, payment, "verify")
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrPaymentNotSuccessful
	}
	return res, nil
}

// HandleWebhook обрабатывает уведомление шлюза. Подпись проверяется до разбора тела,
// события кроме charge.success игнорируются.
func (p *PaymentService) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	event, err := p.gateway.ParseWebhook(signature, body)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if event.Event != domain.GatewayEventChargeSuccess {
		p.logger.WithField("event", event.Event).Debug("ignoring gateway event")
		return nil
	}

	l := p.logger.WithField("reference", event.Transaction.Reference)
	payment, err := p.paymentRepo.FindByReference(ctx, event.Transaction.Reference)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			l.Warn("webhook for unknown payment reference")
			return nil
		}
		return fmt.Errorf("webhook payment lookup: %w", err)
	}

	if _, err = p.confirm(ctx, payment, event.Transaction, "webhook"); err != nil {
		return err
	}
	return nil
}

// PendingForReconciliation платежи, зависшие в pending дольше olderThan.
func (p *PaymentService) PendingForReconciliation(
	ctx context.Context,
	olderThan time.Duration,
	limit uint,
) ([]domain.Payment, error) {
	payments, err := p.paymentRepo.GetPendingForReconciliation(ctx, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("pending payments: %w", err)
	}
	return payments, nil
}

// Reconcile сверяет зависший платеж со шлюзом.
func (p *PaymentService) Reconcile(ctx context.Context, payment domain.Payment) error {
	_, err := p.reconcile(ctx, &payment, "reconciliation")
	return err
}

// reconcile запрашивает статус у шлюза. Возвращает nil без ошибки, если платеж еще не завершен.
func (p *PaymentService) reconcile(
	ctx context.Context,
	payment *domain.Payment,
	source string,
) (*ConfirmFromPaymentResult, error) {
	verification, err := p.gateway.Verify(ctx, payment.Reference)
	if err != nil {
		return nil, fmt.Errorf("verify payment `%s`: %w", payment.Reference, err)
	}

	switch {
	case verification.Status == domain.GatewayStatusSuccess:
		return p.confirm(ctx, payment, *verification, source)
	case verification.IsFinalFailure():
		if _, err = p.paymentRepo.MarkFailed(ctx, payment.Reference); err != nil {
			return nil, fmt.Errorf("fail payment `%s`: %w", payment.Reference, err)
		}
		p.logger.WithField("reference", payment.Reference).WithField("status", verification.Status).
			Info("payment marked as failed")
		return nil, nil
	default:
		return nil, nil
	}
}

func (p *PaymentService) confirm(
	ctx context.Context,
	payment *domain.Payment,
	verification domain.GatewayVerification,
	source string,
) (*ConfirmFromPaymentResult, error) {
	if verification.Amount.LessThan(payment.Amount) {
		p.logger.WithField("reference", payment.Reference).
			WithField("expected", payment.Amount.String()).
			WithField("paid", verification.Amount.String()).
			Error("gateway amount is less than payment amount")
		return nil, fmt.Errorf("%w: paid %s of %s", domain.ErrInvalidAmount, verification.Amount, payment.Amount)
	}

	res, err := p.bookings.ConfirmFromPayment(ctx, payment.BookingID, payment.Reference)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	metrics.RecordPaymentConfirmation(source, res.Changed)
	return res, nil
}
