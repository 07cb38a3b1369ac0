package domain

type transitionKey struct {
	from BookingStatus
	to   BookingStatus
}

// bookingTransitions таблица допустимых переходов и ролей, которым они разрешены.
var bookingTransitions = map[transitionKey][]ActorType{
	{BookingStatusPending, BookingStatusConfirmed}:    {ActorArtisan, ActorPayment},
	{BookingStatusConfirmed, BookingStatusInProgress}: {ActorArtisan},
	{BookingStatusInProgress, BookingStatusCompleted}: {ActorArtisan},
	{BookingStatusPending, BookingStatusCancelled}:    {ActorCustomer},
	{BookingStatusConfirmed, BookingStatusCancelled}:  {ActorCustomer},
}

// ValidateTransition проверяет переход from -> to для роли actor.
// Возвращает *InvalidTransitionError, если переход отсутствует в таблице, и ErrNotAuthorized,
// если переход существует, но роли он не разрешен.
func ValidateTransition(from, to BookingStatus, actor ActorType) error {
	actors, ok := bookingTransitions[transitionKey{from: from, to: to}]
	if !ok {
		return NewInvalidTransitionError(from, to)
	}
	for _, a := range actors {
		if a == actor {
			return nil
		}
	}
	return ErrNotAuthorized
}

// TimelineEventFor возвращает тип события таймлайна для статуса, в который перешло бронирование.
func TimelineEventFor(status BookingStatus) (TimelineEventType, bool) {
	switch status {
	case BookingStatusConfirmed:
		return TimelineConfirmed, true
	case BookingStatusInProgress:
		return TimelineStarted, true
	case BookingStatusCompleted:
		return TimelineCompleted, true
	case BookingStatusCancelled:
		return TimelineCancelled, true
	default:
		return "", false
	}
}

// AcceptsPayment сообщает, можно ли оплатить бронирование в статусе status. Ремесленник может
// подтвердить бронирование раньше, чем клиент его оплатит.
func AcceptsPayment(status BookingStatus) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}
