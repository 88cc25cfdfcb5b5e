package reservation

type Status string

const (
	StatusRequested       Status = "requested"
	StatusConfirmed       Status = "confirmed"
	StatusCompleted       Status = "completed"
	StatusCancelledByUser Status = "cancelled_by_user"
	StatusCancelledByShop Status = "cancelled_by_shop"
	StatusNoShow          Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCompleted,
		StatusCancelledByUser, StatusCancelledByShop, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation still holds its slot.
func (s Status) IsActive() bool {
	return s == StatusRequested || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && !s.IsActive()
}

func (s Status) IsCancelled() bool {
	return s == StatusCancelledByUser || s == StatusCancelledByShop
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// ActiveStatuses lists the statuses whose slots block new allocations.
func ActiveStatuses() []string {
	return []string{StatusRequested.String(), StatusConfirmed.String()}
}

type EventType string

const (
	EventRequested        EventType = "reservation_requested"
	EventConfirmed        EventType = "reservation_confirmed"
	EventCompleted        EventType = "reservation_completed"
	EventCancelledByUser  EventType = "reservation_cancelled_by_user"
	EventCancelledByShop  EventType = "reservation_cancelled_by_shop"
	EventNoShow           EventType = "reservation_no_show"
	EventPaymentFailed    EventType = "payment_verification_failed"
	EventRefundScheduled  EventType = "payment_refund_scheduled"
	EventPaymentCancelled EventType = "payment_cancelled"
)

func (e EventType) String() string {
	return string(e)
}
