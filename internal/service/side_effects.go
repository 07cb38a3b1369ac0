package service

import (
	"context"
	"strconv"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/metrics"
	"github.com/sirupsen/logrus"
)

// SideEffects внешние получатели, вызываемые после коммита. Их ошибки только логируются и не влияют
// на результат операции.
type SideEffects struct {
	notifier  Notifier
	mailer    Mailer
	publisher EventPublisher
	logger    *logrus.Entry
}

func NewSideEffects(notifier Notifier, mailer Mailer, publisher EventPublisher, l *logrus.Logger) *SideEffects {
	return &SideEffects{
		notifier:  notifier,
		mailer:    mailer,
		publisher: publisher,
		logger:    l.WithField("component", "side_effects"),
	}
}

func (s *SideEffects) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		metrics.RecordSideEffectFailure("notification")
		s.logger.WithError(err).WithField("user_id", n.UserID).Warn("failed to create notification")
	}
}

func (s *SideEffects) mail(ctx context.Context, bookingID int64, title, intro string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendBookingEmail(ctx, bookingID, title, intro); err != nil {
		metrics.RecordSideEffectFailure("email")
		s.logger.WithError(err).WithField("booking_id", bookingID).Warn("failed to queue booking email")
	}
}

func (s *SideEffects) publish(ctx context.Context, topic string, key int64, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, strconv.FormatInt(key, 10), event); err != nil {
		metrics.RecordSideEffectFailure("event")
		s.logger.WithError(err).WithField("topic", topic).Warn("failed to publish event")
	}
}

func bookingRef(bookingID int64) (*int64, *string) {
	refType := domain.ReferenceTypeBooking
	return &bookingID, &refType
}
