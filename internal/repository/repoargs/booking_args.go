package repoargs

import (
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateBooking struct {
	CustomerID      int64
	ArtisanID       int64
	ServiceID       int64
	BookingDate     time.Time
	BookingTime     string
	LocationAddress string
	Latitude        *float64
	Longitude       *float64
	TotalAmount     decimal.Decimal
	Notes           *string
}

// TransitionBooking условное обновление статуса: применяется только если текущий статус равен From.
type TransitionBooking struct {
	ID              int64
	From            domain.BookingStatus
	To              domain.BookingStatus
	CompletionNotes *string
	MarkArrived     bool
}

type CreateTimelineEvent struct {
	BookingID   int64
	EventType   domain.TimelineEventType
	Description string
	CreatedBy   *int64
}

type CreateReview struct {
	BookingID  int64
	CustomerID int64
	ArtisanID  int64
	Rating     int
	Comment    string
}
