package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/metrics"
	"github.com/fsdevblog/hustlaa/internal/repository/repoargs"
	"github.com/fsdevblog/hustlaa/pkg/uow"
)

type transitionOptions struct {
	createdBy       *int64
	completionNotes *string
	markArrived     bool
	description     string
}

// transitionResult примененный переход. Используется для побочных эффектов после коммита.
type transitionResult struct {
	booking       *domain.Booking
	from          domain.BookingStatus
	actor         domain.ActorType
	artisanUserID int64
}

// applyTransition переводит заблокированное бронирование в статус to и пишет событие таймлайна.
// Права actor должны быть проверены заранее через domain.ValidateTransition.
func applyTransition(
	ctx context.Context,
	tx uow.TX,
	booking *domain.Booking,
	artisanUserID int64,
	to domain.BookingStatus,
	actor domain.ActorType,
	opts transitionOptions,
) (*transitionResult, error) {
	bookingRepo, err := uow.GetAs[BookingRepository](tx, repoargs.BookingRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	timelineRepo, err := uow.GetAs[TimelineRepository](tx, repoargs.TimelineRepoName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	updated, err := bookingRepo.TransitionStatus(ctx, repoargs.TransitionBooking{
		ID:              booking.ID,
		From:            booking.Status,
		To:              to,
		CompletionNotes: opts.completionNotes,
		MarkArrived:     opts.markArrived,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			// статус поменялся между чтением и обновлением
			return nil, domain.NewInvalidTransitionError(booking.Status, to)
		}
		return nil, err //nolint:wrapcheck
	}

	if eventType, ok := domain.TimelineEventFor(to); ok {
		description := opts.description
		if description == "" {
			description = defaultTimelineDescription(to)
		}
		if _, err = timelineRepo.Create(ctx, repoargs.CreateTimelineEvent{
			BookingID:   booking.ID,
			EventType:   eventType,
			Description: description,
			CreatedBy:   opts.createdBy,
		}); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return &transitionResult{
		booking:       updated,
		from:          booking.Status,
		actor:         actor,
		artisanUserID: artisanUserID,
	}, nil
}

func defaultTimelineDescription(to domain.BookingStatus) string {
	switch to {
	case domain.BookingStatusConfirmed:
		return "Booking confirmed"
	case domain.BookingStatusInProgress:
		return "Booking started"
	case domain.BookingStatusCompleted:
		return "Booking completed"
	case domain.BookingStatusCancelled:
		return "Booking cancelled by customer"
	default:
		return "Booking updated"
	}
}

var statusEmailIntro = map[domain.BookingStatus]string{
	domain.BookingStatusConfirmed:  "Your booking has been confirmed.",
	domain.BookingStatusInProgress: "Your booking is now in progress.",
	domain.BookingStatusCompleted:  "Your booking has been marked as completed.",
	domain.BookingStatusCancelled:  "Your booking has been cancelled.",
}

// bookingTransitioned уведомления, письма и событие после закоммиченного перехода.
func (s *SideEffects) bookingTransitioned(ctx context.Context, res *transitionResult) {
	b := res.booking
	metrics.RecordBookingTransition(string(b.Status), string(res.actor))

	refID, refType := bookingRef(b.ID)
	title := "Booking update: " + strings.ReplaceAll(string(b.Status), "_", " ")

	switch b.Status {
	case domain.BookingStatusConfirmed:
		message := fmt.Sprintf("Booking #%d has been confirmed.", b.ID)
		if res.actor == domain.ActorPayment {
			message = fmt.Sprintf("Payment received, booking #%d is confirmed.", b.ID)
		}
		for _, userID := range []int64{b.CustomerID, res.artisanUserID} {
			s.notify(ctx, domain.Notification{
				UserID: userID, Type: domain.NotificationBooking, Title: "Booking confirmed",
				Message: message, ReferenceID: refID, ReferenceType: refType,
			})
		}
	case domain.BookingStatusInProgress:
		s.notify(ctx, domain.Notification{
			UserID: b.CustomerID, Type: domain.NotificationBooking, Title: "Artisan has arrived",
			Message:     fmt.Sprintf("Your artisan has arrived and started booking #%d.", b.ID),
			ReferenceID: refID, ReferenceType: refType,
		})
	case domain.BookingStatusCompleted:
		s.notify(ctx, domain.Notification{
			UserID: b.CustomerID, Type: domain.NotificationBooking, Title: "Booking completed",
			Message:     fmt.Sprintf("Booking #%d is completed. You can now leave a review.", b.ID),
			ReferenceID: refID, ReferenceType: refType,
		})
	case domain.BookingStatusCancelled:
		s.notify(ctx, domain.Notification{
			UserID: res.artisanUserID, Type: domain.NotificationBooking, Title: "Booking cancelled",
			Message:     fmt.Sprintf("Booking #%d was cancelled by the customer.", b.ID),
			ReferenceID: refID, ReferenceType: refType,
		})
	}

	if res.actor == domain.ActorPayment {
		s.mail(ctx, b.ID, "Payment received - booking confirmed",
			"We have received your payment and your booking has been confirmed.")
	} else {
		s.mail(ctx, b.ID, title, statusEmailIntro[b.Status])
	}

	s.publish(ctx, domain.TopicBookingStatusChanged, b.ID, domain.BookingStatusChangedEvent{
		BookingID:  b.ID,
		From:       res.from,
		To:         b.Status,
		Actor:      res.actor,
		OccurredAt: time.Now().UTC(),
	})
}

// notFoundAs подменяет ErrRecordNotFound бизнес-ошибкой target.
func notFoundAs(err error, target error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", target, err)
	}
	return err
}

// bookingPaid сообщает, оплачено ли бронирование из кошелька или через платежный шлюз.
func bookingPaid(
	ctx context.Context,
	transRepo WalletTransactionRepository,
	paymentRepo PaymentRepository,
	bookingID int64,
) (bool, error) {
	paid, err := transRepo.HasBookingPayment(ctx, bookingID)
	if err != nil || paid {
		return paid, err //nolint:wrapcheck
	}
	return paymentRepo.HasCompletedForBooking(ctx, bookingID) //nolint:wrapcheck
}

func bookingPaidInTx(ctx context.Context, tx uow.TX, bookingID int64) (bool, error) {
	transRepo, err := uow.GetAs[WalletTransactionRepository](tx, repoargs.WalletTransactionRepoName)
	if err != nil {
		return false, err //nolint:wrapcheck
	}
	paymentRepo, err := uow.GetAs[PaymentRepository](tx, repoargs.PaymentRepoName)
	if err != nil {
		return false, err //nolint:wrapcheck
	}
	return bookingPaid(ctx, transRepo, paymentRepo, bookingID)
}
