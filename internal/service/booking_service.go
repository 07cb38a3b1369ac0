package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/metrics"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
	"github.com/sirupsen/logrus"
)

var bookingTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

type BookingService struct {
	uow          uow.UOW
	bookingRepo  BookingRepository
	artisanRepo  ArtisanRepository
	catalogRepo  CatalogRepository
	timelineRepo TimelineRepository
	effects      *SideEffects
	logger       *logrus.Entry
}

func NewBookingService(u uow.UOW, effects *SideEffects, l *logrus.Logger) (*BookingService, error) {
	bookingRepo, err := uow.GetRepositoryAs[BookingRepository](u, repoargs.BookingRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	artisanRepo, err := uow.GetRepositoryAs[ArtisanRepository](u, repoargs.ArtisanRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	catalogRepo, err := uow.GetRepositoryAs[CatalogRepository](u, repoargs.CatalogRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	timelineRepo, err := uow.GetRepositoryAs[TimelineRepository](u, repoargs.TimelineRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &BookingService{
		uow:          u,
		bookingRepo:  bookingRepo,
		artisanRepo:  artisanRepo,
		catalogRepo:  catalogRepo,
		timelineRepo: timelineRepo,
		effects:      effects,
		logger:       l.WithField("component", "booking_service"),
	}, nil
}

type CreateBookingArgs struct {
	ArtisanID       int64
	ServiceID       int64
	BookingDate     time.Time
	BookingTime     string
	LocationAddress string
	Latitude        *float64
	Longitude       *float64
	Notes           *string
}

func (a CreateBookingArgs) validate() error {
	switch {
	case a.ArtisanID <= 0, a.ServiceID <= 0:
		return fmt.Errorf("%w: artisan and service are required", domain.ErrInvalidInput)
	case a.BookingDate.IsZero():
		return fmt.Errorf("%w: booking date is required", domain.ErrInvalidInput)
	case !bookingTimeRe.MatchString(a.BookingTime):
		return fmt.Errorf("%w: booking time must be HH:MM", domain.ErrInvalidInput)
	case strings.TrimSpace(a.LocationAddress) == "":
		return fmt.Errorf("%w: location address is required", domain.ErrInvalidInput)
	case (a.Latitude == nil) != (a.Longitude == nil):
		return fmt.Errorf("%w: latitude and longitude go together", domain.ErrInvalidInput)
	}
	return nil
}

// Create создает бронирование в статусе pending. Стоимость фиксируется по цене услуги.
func (b *BookingService) Create(
	ctx context.Context,
	customerID int64,
	args CreateBookingArgs,
) (*domain.Booking, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	artisan, err := b.artisanRepo.FindByID(ctx, args.ArtisanID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrArtisanUnavailable)
	}
	if artisan.AvailabilityStatus != domain.AvailabilityAvailable {
		return nil, domain.ErrArtisanUnavailable
	}

	service, err := b.catalogRepo.FindService(ctx, args.ServiceID, artisan.ID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrServiceNotFound)
	}

	booking, err := b.bookingRepo.Create(ctx, repoargs.CreateBooking{
		CustomerID:      customerID,
		ArtisanID:       artisan.ID,
		ServiceID:       service.ID,
		BookingDate:     args.BookingDate,
		BookingTime:     args.BookingTime,
		LocationAddress: strings.TrimSpace(args.LocationAddress),
		Latitude:        args.Latitude,
		Longitude:       args.Longitude,
		TotalAmount:     service.Price,
		Notes:           args.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.RecordBookingTransition(string(domain.BookingStatusPending), string(domain.ActorCustomer))
	refID, refType := bookingRef(booking.ID)
	b.effects.notify(ctx, domain.Notification{
		UserID:        artisan.UserID,
		Type:          domain.NotificationBooking,
		Title:         "New booking request",
		Message:       fmt.Sprintf("You have a new booking request for %s.", service.Name),
		ReferenceID:   refID,
		ReferenceType: refType,
	})
	b.effects.mail(ctx, booking.ID, "New booking request",
		"A new booking request has been created. Please review and proceed.")
	return booking, nil
}

// Get возвращает бронирование, если actorUserID является его клиентом или ремесленником.
func (b *BookingService) Get(ctx context.Context, actorUserID, bookingID int64) (*domain.Booking, error) {
	booking, _, err := b.authorizedBooking(ctx, actorUserID, bookingID)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (b *BookingService) Timeline(ctx context.Context, actorUserID, bookingID int64) ([]domain.TimelineEvent, error) {
	if _, _, err := b.authorizedBooking(ctx, actorUserID, bookingID); err != nil {
		return nil, err
	}
	events, err := b.timelineRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("timeline of booking %d: %w", bookingID, err)
	}
	return events, nil
}

// UpdateStatus переводит бронирование в newStatus. Роль определяется по actorUserID заново на каждый вызов.
func (b *BookingService) UpdateStatus(
	ctx context.Context,
	actorUserID, bookingID int64,
	newStatus domain.BookingStatus,
) (*domain.Booking, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status `%s`", domain.ErrInvalidInput, newStatus)
	}
	return b.transition(ctx, actorUserID, bookingID, newStatus, transitionOptions{})
}

// MarkArrived отмечает прибытие ремесленника и начинает работу по бронированию.
func (b *BookingService) MarkArrived(ctx context.Context, actorUserID, bookingID int64) (*domain.Booking, error) {
	return b.transition(ctx, actorUserID, bookingID, domain.BookingStatusInProgress, transitionOptions{
		markArrived: true,
		description: "Artisan arrived at location",
	})
}

func (b *BookingService) Complete(
	ctx context.Context,
	actorUserID, bookingID int64,
	completionNotes string,
) (*domain.Booking, error) {
	opts := transitionOptions{}
	if notes := strings.TrimSpace(completionNotes); notes != "" {
		opts.completionNotes = &notes
	}
	return b.transition(ctx, actorUserID, bookingID, domain.BookingStatusCompleted, opts)
}

// Cancel отменяет бронирование клиентом. Оплаченные средства автоматически не возвращаются.
func (b *BookingService) Cancel(ctx context.Context, customerID, bookingID int64) (*domain.Booking, error) {
	return b.transition(ctx, customerID, bookingID, domain.BookingStatusCancelled, transitionOptions{})
}

// SetETA задает ожидаемое время прибытия. Доступно ремесленнику для подтвержденных и начатых бронирований.
func (b *BookingService) SetETA(
	ctx context.Context,
	actorUserID, bookingID int64,
	eta time.Time,
) (*domain.Booking, error) {
	if eta.IsZero() {
		return nil, fmt.Errorf("%w: estimated arrival time is required", domain.ErrInvalidInput)
	}

	var updated *domain.Booking
	err := b.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		bookingRepo, err := uow.GetAs[BookingRepository](tx, repoargs.BookingRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}
		booking, artisan, err := lockBookingWithArtisan(c, tx, bookingID)
		if err != nil {
			return err
		}
		if artisan.UserID != actorUserID {
			return domain.ErrNotAuthorized
		}
		if booking.Status != domain.BookingStatusConfirmed && booking.Status != domain.BookingStatusInProgress {
			return fmt.Errorf("%w: cannot set eta on %s booking", domain.ErrInvalidTransition, booking.Status)
		}
		updated, err = bookingRepo.SetETA(c, bookingID, eta)
		return err //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("set eta of booking %d: %w", bookingID, err)
	}
	return updated, nil
}

type ConfirmFromPaymentResult struct {
	Booking *domain.Booking
	Payment *domain.Payment
	// Changed true, только если этот вызов подтвердил бронирование.
	Changed bool
	// RefundRequired платеж завершен этим вызовом, но бронирование уже было оплачено или отменено.
	RefundRequired bool
}

// ConfirmFromPayment отмечает платеж завершенным и подтверждает ожидающее оплаты бронирование.
// Идемпотентна: повторные вызовы с тем же reference ничего не меняют и не повторяют побочные эффекты.
func (b *BookingService) ConfirmFromPayment(
	ctx context.Context,
	bookingID int64,
	reference string,
) (*ConfirmFromPaymentResult, error) {
	var (
		res        ConfirmFromPaymentResult
		transition *transitionResult
	)
	err := b.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		paymentRepo, err := uow.GetAs[PaymentRepository](tx, repoargs.PaymentRepoName)
		if err != nil {
			return err //nolint:wrapcheck
		}

		// платеж блокируется раньше бронирования
		payment, err := paymentRepo.FindByReferenceForUpdate(c, reference)
		if err != nil {
			return notFoundAs(err, domain.ErrPaymentNotFound)
		}
		if payment.BookingID != bookingID {
			return fmt.Errorf("%w: reference `%s` belongs to another booking", domain.ErrPaymentNotFound, reference)
		}

		booking, artisan, err := lockBookingWithArtisan(c, tx, bookingID)
		if err != nil {
			return err
		}
		res.Booking = booking

		var paidBefore bool
		if payment.Status != domain.PaymentStatusCompleted {
			if paidBefore, err = bookingPaidInTx(c, tx, bookingID); err != nil {
				return err
			}
		}

		payment, changed, err := paymentRepo.MarkCompleted(c, reference)
		if err != nil {
			return err //nolint:wrapcheck
		}
		res.Payment = payment

		if changed && (paidBefore || booking.Status == domain.BookingStatusCancelled) {
			res.RefundRequired = true
			b.logger.WithField("booking_id", bookingID).
				WithField("reference", reference).
				WithField("booking_status", booking.Status).
				WithField("already_paid", paidBefore).
				Warn("payment received for paid or cancelled booking, manual refund required")
		}
		if booking.Status != domain.BookingStatusPending {
			return nil
		}

		transition, err = applyTransition(c, tx, booking, artisan.UserID, domain.BookingStatusConfirmed,
			domain.ActorPayment, transitionOptions{description: "Payment received, booking confirmed"})
		if err != nil {
			return err
		}
		res.Booking = transition.booking
		res.Changed = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("confirm booking %d from payment `%s`: %w", bookingID, reference, err)
	}

	if transition != nil {
		b.effects.bookingTransitioned(ctx, transition)
	}
	return &res, nil
}

// transition общий путь переходов, инициированных пользователем.
func (b *BookingService) transition(
	ctx context.Context,
	actorUserID, bookingID int64,
	to domain.BookingStatus,
	opts transitionOptions,
) (*domain.Booking, error) {
	opts.createdBy = &actorUserID

	var res *transitionResult
	err := b.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		booking, artisan, err := lockBookingWithArtisan(c, tx, bookingID)
		if err != nil {
			return err
		}
		actor, err := resolveActor(booking, artisan, actorUserID)
		if err != nil {
			return err
		}
		if err = domain.ValidateTransition(booking.Status, to, actor); err != nil {
			return err //nolint:wrapcheck
		}
		res, err = applyTransition(c, tx, booking, artisan.UserID, to, actor, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("move booking %d to `%s`: %w", bookingID, to, err)
	}

	b.effects.bookingTransitioned(ctx, res)
	return res.booking, nil
}

func (b *BookingService) authorizedBooking(
	ctx context.Context,
	actorUserID, bookingID int64,
) (*domain.Booking, *domain.ArtisanProfile, error) {
	booking, err := b.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, notFoundAs(err, domain.ErrBookingNotFound)
	}
	artisan, err := b.artisanRepo.FindByID(ctx, booking.ArtisanID)
	if err != nil {
		return nil, nil, fmt.Errorf("artisan of booking %d: %w", bookingID, err)
	}
	if _, err = resolveActor(booking, artisan, actorUserID); err != nil {
		return nil, nil, err
	}
	return booking, artisan, nil
}

func lockBookingWithArtisan(
	ctx context.Context,
	tx uow.TX,
	bookingID int64,
) (*domain.Booking, *domain.ArtisanProfile, error) {
	bookingRepo, err := uow.GetAs[BookingRepository](tx, repoargs.BookingRepoName)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	artisanRepo, err := uow.GetAs[ArtisanRepository](tx, repoargs.ArtisanRepoName)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	booking, err := bookingRepo.FindByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, nil, notFoundAs(err, domain.ErrBookingNotFound)
	}
	artisan, err := artisanRepo.FindByID(ctx, booking.ArtisanID)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	return booking, artisan, nil
}

// resolveActor определяет роль пользователя в бронировании.
func resolveActor(booking *domain.Booking, artisan *domain.ArtisanProfile, userID int64) (domain.ActorType, error) {
	switch userID {
	case booking.CustomerID:
		return domain.ActorCustomer, nil
	case artisan.UserID:
		return domain.ActorArtisan, nil
	default:
		return "", domain.ErrNotAuthorized
	}
}
