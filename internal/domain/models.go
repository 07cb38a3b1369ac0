package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
	Balance     decimal.Decimal
	TotalEarned decimal.Decimal
	TotalSpent  decimal.Decimal
}

type WalletTransaction struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	WalletID      int64
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	ReferenceID   *int64
	ReferenceType *string
	Status        TransactionStatus
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

type Booking struct {
	ID                   int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CustomerID           int64
	ArtisanID            int64
	ServiceID            int64
	BookingDate          time.Time
	BookingTime          string
	LocationAddress      string
	Latitude             *float64
	Longitude            *float64
	TotalAmount          decimal.Decimal
	Status               BookingStatus
	Notes                *string
	CompletionNotes      *string
	EstimatedArrivalTime *time.Time
	ActualArrivalTime    *time.Time
}

type TimelineEvent struct {
	ID          int64
	CreatedAt   time.Time
	BookingID   int64
	EventType   TimelineEventType
	Description string
	CreatedBy   *int64
}

type Review struct {
	ID         int64
	CreatedAt  time.Time
	BookingID  int64
	CustomerID int64
	ArtisanID  int64
	Rating     int
	Comment    string
}

type ArtisanProfile struct {
	ID                 int64
	UserID             int64
	AvailabilityStatus AvailabilityStatus
	Rating             decimal.Decimal
	TotalReviews       int64
}

// ServiceOffering услуга, которую оказывает ремесленник.
type ServiceOffering struct {
	ID        int64
	ArtisanID int64
	Name      string
	Price     decimal.Decimal
}

type Payment struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	BookingID     int64
	Amount        decimal.Decimal
	PaymentMethod string
	Reference     string
	Status        PaymentStatus
}

type Notification struct {
	UserID        int64
	Type          NotificationType
	Title         string
	Message       string
	ReferenceID   *int64
	ReferenceType *string
}

// BookingContacts данные сторон бронирования для писем.
type BookingContacts struct {
	BookingID         int64
	ServiceName       string
	BookingDate       time.Time
	BookingTime       string
	LocationAddress   string
	TotalAmount       decimal.Decimal
	CustomerEmail     string
	CustomerFirstName string
	ArtisanEmail      string
	ArtisanFirstName  string
	CustomerUserID    int64
	ArtisanUserID     int64
}
