package notify

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/hustlaa/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
}

type ContactsRepository interface {
	FindContacts(ctx context.Context, bookingID int64) (*domain.BookingContacts, error)
}

// Sender доставляет письмо получателю.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
