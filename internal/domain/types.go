package domain

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionPayment    TransactionType = "payment"
	TransactionEarning    TransactionType = "earning"
	TransactionRefund     TransactionType = "refund"
)

// IsCredit сообщает, увеличивает ли транзакция данного типа баланс кошелька.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionDeposit, TransactionEarning, TransactionRefund:
		return true
	default:
		return false
	}
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsTerminal true для статусов, из которых переходов нет.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityBusy        AvailabilityStatus = "busy"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

type TimelineEventType string

const (
	TimelineConfirmed TimelineEventType = "confirmed"
	TimelineStarted   TimelineEventType = "started"
	TimelineCompleted TimelineEventType = "completed"
	TimelineCancelled TimelineEventType = "cancelled"
)

// ActorType роль участника, инициирующего переход бронирования.
type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorArtisan  ActorType = "artisan"
	// ActorPayment успешная оплата (кошелек или платежный шлюз).
	ActorPayment ActorType = "payment"
)

const ReferenceTypeBooking = "booking"

type NotificationType string

const (
	NotificationBooking NotificationType = "booking"
	NotificationPayment NotificationType = "payment"
	NotificationReview  NotificationType = "review"
	NotificationSystem  NotificationType = "system"
)
